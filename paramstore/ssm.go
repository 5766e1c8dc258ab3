package paramstore

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/yanizio/ssmsettings/internal/metrics"
)

// DefaultTimeout bounds connect and read per fetch attempt.  Settings
// construction should stall briefly, not hang, when the store is
// unreachable.  Override with the SSM_TIMEOUT environment variable
// (seconds, fractional allowed).
const DefaultTimeout = 500 * time.Millisecond

const timeoutEnv = "SSM_TIMEOUT"

// SSM fetches parameters from AWS Systems Manager Parameter Store.  The
// zero-config constructor builds a fresh client per Fetch from the
// ambient AWS credential chain; nothing is reused across settings
// constructions.
type SSM struct {
	client ssm.GetParametersByPathAPIClient
}

// NewSSM returns a Parameter Store backend using the default AWS
// configuration.
func NewSSM() *SSM { return &SSM{} }

// NewSSMWithClient injects a prebuilt client, for tests and for callers
// that manage their own AWS configuration.
func NewSSMWithClient(c ssm.GetParametersByPathAPIClient) *SSM {
	return &SSM{client: c}
}

// Fetch lists every parameter nested under prefix, decrypting
// SecureStrings, paginating until the store is exhausted.  Keys in the
// returned mapping are paths relative to prefix.
func (s *SSM) Fetch(ctx context.Context, prefix string, caseSensitive bool) (map[string]string, error) {
	metrics.FetchTotal.Inc()

	client := s.client
	if client == nil {
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithHTTPClient(&http.Client{Timeout: clientTimeout()}),
		)
		if err != nil {
			metrics.FetchErrorsTotal.Inc()
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		client = ssm.NewFromConfig(cfg)
	}

	out := make(map[string]string)
	pager := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			metrics.FetchErrorsTotal.Inc()
			return nil, fmt.Errorf("get parameters by path %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			key := RelativeKey(aws.ToString(p.Name), prefix)
			if key == "" {
				continue
			}
			if !caseSensitive {
				key = strings.ToLower(key)
			}
			out[key] = aws.ToString(p.Value)
		}
	}

	metrics.ParametersLoadedTotal.Add(float64(len(out)))
	return out, nil
}

// clientTimeout reads the SSM_TIMEOUT override, falling back to
// DefaultTimeout on absence or garbage.
func clientTimeout() time.Duration {
	raw := os.Getenv(timeoutEnv)
	if raw == "" {
		return DefaultTimeout
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return DefaultTimeout
	}
	return time.Duration(f * float64(time.Second))
}

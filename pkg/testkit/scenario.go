package testkit

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Scenario is one data-driven HTTP case. As names the caller; it is looked
// up in the token map given to RunScenarios ("" or "guest" sends no token).
type Scenario struct {
	Name            string          `json:"name"`
	As              string          `json:"as"`
	RequestMethod   string          `json:"requestMethod"`
	RequestURL      string          `json:"requestUrl"`
	Body            json.RawMessage `json:"body"`
	ExpectedCode    int             `json:"expectedCode"`
	ExpectedMessage string          `json:"expectedMessage"`
	ExpectedErrors  []string        `json:"expectedErrors"` // field keys that must be present
}

// LoadScenarios reads a JSON array of scenarios.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenarios %q: %w", path, err)
	}
	var out []Scenario
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse scenarios %q: %w", path, err)
	}
	return out, nil
}

// RunScenarios runs each scenario as a subtest against h.
func RunScenarios(t *testing.T, h http.Handler, tokens map[string]string, scenarios []Scenario) {
	t.Helper()

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			token, ok := tokens[s.As]
			if !ok && s.As != "" && s.As != "guest" {
				t.Fatalf("testkit: no token for %q", s.As)
			}

			var body interface{}
			if len(s.Body) > 0 {
				body = string(s.Body)
			}
			rec := Do(t, h, s.RequestMethod, s.RequestURL, token, body)

			if !assert.Equal(t, s.ExpectedCode, rec.Code, "[%s] status; body: %s", s.Name, rec.Body.String()) {
				return
			}
			if s.ExpectedMessage == "" && len(s.ExpectedErrors) == 0 {
				return
			}

			env := Decode(t, rec)
			if s.ExpectedMessage != "" {
				assert.Equal(t, s.ExpectedMessage, env.Message, "[%s] message", s.Name)
			}
			for _, field := range s.ExpectedErrors {
				assert.Contains(t, env.Errors, field, "[%s] errors", s.Name)
			}
		})
	}
}

//go:build integration

package integration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/xuri/excelize/v2"
)

// testContext holds state shared across step definitions within a scenario.
// Without BASE_URL every scenario gets its own service and guest function.
type testContext struct {
	baseURL      string
	client       *http.Client
	response     *http.Response
	responseBody []byte

	function   *guestFunction
	upstream   *httptest.Server
	service    *httptest.Server
	sessionDir string

	guestName   string
	allergyText string
}

func newTestContext() *testContext {
	return &testContext{baseURL: os.Getenv("BASE_URL")}
}

// external reports whether the scenario runs against a deployed service.
func (tc *testContext) external() bool {
	return os.Getenv("BASE_URL") != ""
}

func (tc *testContext) start() error {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}

	tc.client = &http.Client{Timeout: 10 * time.Second, Jar: jar}

	if tc.external() {
		return nil
	}

	tc.function = newGuestFunction()
	tc.upstream = httptest.NewServer(tc.function)

	tc.sessionDir, err = os.MkdirTemp("", "wedding-rsvp-sessions-")
	if err != nil {
		return err
	}

	tc.service, err = newService(tc.upstream.URL, tc.sessionDir)
	if err != nil {
		return fmt.Errorf("starting service: %w", err)
	}

	tc.baseURL = tc.service.URL

	return nil
}

func (tc *testContext) stop() {
	if tc.response != nil && tc.response.Body != nil {
		_ = tc.response.Body.Close()
	}

	if tc.service != nil {
		tc.service.Close()
	}

	if tc.upstream != nil {
		tc.upstream.Close()
	}

	if tc.sessionDir != "" {
		_ = os.RemoveAll(tc.sessionDir)
	}

	*tc = testContext{baseURL: os.Getenv("BASE_URL")}
}

// InitializeScenario registers step definitions for each scenario.
func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		return ctx, tc.start()
	})

	ctx.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		tc.stop()
		return ctx, err
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
	ctx.Step(`^nobody has answered yet$`, tc.nobodyHasAnsweredYet)
	ctx.Step(`^the guest endpoint is down$`, tc.theGuestEndpointIsDown)
	ctx.Step(`^I open the RSVP form$`, tc.iOpenTheRSVPForm)
	ctx.Step(`^I enter the name "([^"]*)"$`, tc.iEnterTheName)
	ctx.Step(`^I enter the allergy "([^"]*)"$`, tc.iEnterTheAllergy)
	ctx.Step(`^I choose the (color|food|drink) "([^"]*)"$`, tc.iChoose)
	ctx.Step(`^I submit the form$`, tc.iSubmitTheForm)
	ctx.Step(`^I request GET "([^"]*)"$`, tc.iRequestGET)
	ctx.Step(`^I post the guest JSON:$`, tc.iPostTheGuestJSON)
	ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "(.*)"$`, tc.theResponseShouldContain)
	ctx.Step(`^the response should not contain "(.*)"$`, tc.theResponseShouldNotContain)
	ctx.Step(`^the response header "([^"]*)" should contain "(.*)"$`, tc.theResponseHeaderShouldContain)
	ctx.Step(`^the export should contain the row "([^"]*)"$`, tc.theExportShouldContainTheRow)
	ctx.Step(`^the guest endpoint should hold (\d+) guests?$`, tc.theGuestEndpointShouldHold)
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	if err := tc.iRequestGET("/-/live"); err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}

	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("liveness check failed with status %d", tc.response.StatusCode)
	}

	return nil
}

func (tc *testContext) nobodyHasAnsweredYet() error {
	if tc.external() {
		return godog.ErrSkip
	}

	if n := tc.function.store.Len(); n != 0 {
		return fmt.Errorf("guest endpoint already holds %d guests", n)
	}

	return nil
}

func (tc *testContext) theGuestEndpointIsDown() error {
	if tc.external() {
		return godog.ErrSkip
	}

	tc.function.down.Store(true)

	return nil
}

func (tc *testContext) iOpenTheRSVPForm() error {
	return tc.iRequestGET("/")
}

func (tc *testContext) iEnterTheName(name string) error {
	tc.guestName = name
	return nil
}

func (tc *testContext) iEnterTheAllergy(text string) error {
	tc.allergyText = text
	return nil
}

// iChoose clicks one option button. The form re-posts the typed fields with
// every click, so the draft keeps them.
func (tc *testContext) iChoose(category, tag string) error {
	return tc.postForm(url.Values{"toggle": {category + ":" + tag}})
}

func (tc *testContext) iSubmitTheForm() error {
	return tc.postForm(url.Values{"action": {"submit"}})
}

func (tc *testContext) postForm(values url.Values) error {
	values.Set("guestName", tc.guestName)
	values.Set("allergyText", tc.allergyText)

	return tc.do(http.MethodPost, "/rsvp", "application/x-www-form-urlencoded", strings.NewReader(values.Encode()))
}

// iRequestGET makes a GET request to the specified path.
func (tc *testContext) iRequestGET(path string) error {
	return tc.do(http.MethodGet, path, "", nil)
}

func (tc *testContext) iPostTheGuestJSON(body *godog.DocString) error {
	return tc.do(http.MethodPost, "/api/v1/guests", "application/json", strings.NewReader(body.Content))
}

func (tc *testContext) do(method, path, contentType string, body io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if tc.response != nil && tc.response.Body != nil {
		_ = tc.response.Body.Close()
	}

	tc.response, err = tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	tc.responseBody, err = io.ReadAll(tc.response.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	return nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return errors.New("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return errors.New("no response body")
	}

	if !bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if bytes.Contains(tc.responseBody, []byte(text)) {
		return fmt.Errorf("response body unexpectedly contains %q", text)
	}

	return nil
}

func (tc *testContext) theResponseHeaderShouldContain(name, text string) error {
	if tc.response == nil {
		return errors.New("no response received")
	}

	if got := tc.response.Header.Get(name); !strings.Contains(got, text) {
		return fmt.Errorf("header %s is %q, want it to contain %q", name, got, text)
	}

	return nil
}

// theExportShouldContainTheRow opens the last response as a workbook and looks
// for a data row whose cells, joined with "|", equal want.
func (tc *testContext) theExportShouldContainTheRow(want string) error {
	book, err := excelize.OpenReader(bytes.NewReader(tc.responseBody))
	if err != nil {
		return fmt.Errorf("response is not a workbook: %w", err)
	}
	defer func() { _ = book.Close() }()

	rows, err := book.GetRows("Гости")
	if err != nil {
		return fmt.Errorf("reading sheet: %w", err)
	}

	if len(rows) == 0 {
		return errors.New("export has no header row")
	}

	for _, row := range rows[1:] {
		if strings.Join(row, "|") == want {
			return nil
		}
	}

	return fmt.Errorf("no row %q in %q", want, rows)
}

func (tc *testContext) theGuestEndpointShouldHold(n int) error {
	if tc.external() {
		return godog.ErrSkip
	}

	if got := tc.function.store.Len(); got != n {
		return fmt.Errorf("guest endpoint holds %d guests, want %d", got, n)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite.
func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

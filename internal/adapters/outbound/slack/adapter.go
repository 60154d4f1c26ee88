package slack

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

const (
	methodAuthTest  = "auth.test"
	pingTimeout     = 5 * time.Second
	snippetTypeText = "text"
)

// Adapter delivers alerts to Slack: logs are uploaded as a file first, then
// the message linking to it is posted.
type Adapter struct {
	logger *slog.Logger
	client *client
}

// New creates a Slack adapter. apiURL defaults to DefaultAPIURL and
// httpClient to http.DefaultClient.
func New(
	logger *slog.Logger,
	token string,
	apiURL string,
	httpClient *http.Client,
) *Adapter {
	logger = logger.With("component", "slack")

	return &Adapter{
		logger: logger,
		client: newClient(logger, httpClient, apiURL, token),
	}
}

// DeliverCommand uploads the alert logs, when there are any, and posts the
// alert message to its channel. Any failing step fails the whole alert.
func (a *Adapter) DeliverCommand(ctx context.Context, alert notifier.Alert) error {
	logger := a.logger.With("alertID", alert.ID, "channel", alert.Channel)

	logger.DebugContext(ctx, "start sending alert", "alert", alert.String())

	fileURL, err := a.uploadLogs(ctx, &alert)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUploadLogs, err)
	}

	err = a.postMessage(ctx, &alert, fileURL)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPostMessage, err)
	}

	logger.DebugContext(ctx, "finished sending alert", "alert", alert.String(), "fileURL", fileURL)

	return nil
}

// Name returns the name of the slack component
func (a *Adapter) Name() string {
	return "slack"
}

// Ping checks the token with auth.test.
func (a *Adapter) Ping(ctx context.Context) error {
	var resp apiResponse

	err := a.client.callForm(ctx, methodAuthTest, url.Values{}, &resp)
	if err != nil {
		return err
	}

	return resp.check(methodAuthTest)
}

// PingerCritical keeps Slack outages out of the liveness probe.
func (a *Adapter) PingerCritical() bool {
	return false
}

// PingerReadyCritical keeps Slack outages out of the readiness probe.
func (a *Adapter) PingerReadyCritical() bool {
	return false
}

func (a *Adapter) PingerTimeout() time.Duration {
	return pingTimeout
}

func (a *Adapter) uploadLogs(ctx context.Context, alert *notifier.Alert) (string, error) {
	if alert.Logs.Failed() {
		return "", nil
	}

	logs := trimLogs(alert.Logs.Text)
	if logs == "" {
		return "", nil
	}

	title := fmt.Sprintf("%s_%s_%s", alert.Namespace, alert.PodName, alert.ContainerName)

	var target uploadURLResponse

	err := a.client.callForm(ctx, methodGetUploadURL, url.Values{
		"snippet_type": {snippetTypeText},
		"length":       {strconv.Itoa(len(logs))},
		"filename":     {title},
	}, &target)
	if err != nil {
		return "", err
	}

	if err := target.check(methodGetUploadURL); err != nil {
		return "", err
	}

	if target.UploadURL == "" || target.FileID == "" {
		return "", fmt.Errorf("%w: %s: missing upload_url or file_id", ErrUnexpectedResponse, methodGetUploadURL)
	}

	err = a.client.upload(ctx, target.UploadURL, []byte(logs))
	if err != nil {
		return "", err
	}

	var completed completeUploadResponse

	err = a.client.callJSON(ctx, methodCompleteUpload, completeUploadRequest{
		Files: []uploadedFile{{ID: target.FileID, Title: title}},
	}, &completed)
	if err != nil {
		return "", err
	}

	if err := completed.check(methodCompleteUpload); err != nil {
		return "", err
	}

	if len(completed.Files) == 0 || completed.Files[0].Permalink == "" {
		return "", fmt.Errorf("%w: %s: missing file permalink", ErrUnexpectedResponse, methodCompleteUpload)
	}

	return completed.Files[0].Permalink, nil
}

func (a *Adapter) postMessage(ctx context.Context, alert *notifier.Alert, fileURL string) error {
	var resp apiResponse

	err := a.client.callJSON(ctx, methodPostMessage, postMessageRequest{
		Channel:     alert.Channel,
		Text:        FallbackText(alert),
		Blocks:      BuildBlocks(alert, fileURL),
		UnfurlLinks: false,
	}, &resp)
	if err != nil {
		return err
	}

	return resp.check(methodPostMessage)
}

package slack

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/skillcoder/restart-notifier/internal/logic/notifier"
)

const (
	blockHeader  = "header"
	blockSection = "section"
	textPlain    = "plain_text"
	textMarkdown = "mrkdwn"

	// maxSectionFields is Slack's limit for fields of one section block.
	maxSectionFields = 10

	headerText   = "Container restarted"
	logsTitle    = "*Container logs before restart*"
	unknownValue = "unknown"
)

// Block is a Slack Block Kit layout block.
type Block struct {
	Type   string `json:"type"`
	Text   *Text  `json:"text,omitempty"`
	Fields []Text `json:"fields,omitempty"`
}

// Text is a Block Kit text object.
type Text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func markdown(text string) Text {
	return Text{Type: textMarkdown, Text: text}
}

// BuildBlocks renders the alert. fileURL is the permalink of the uploaded
// logs, empty when nothing was uploaded.
func BuildBlocks(alert *notifier.Alert, fileURL string) []Block {
	identity := markdown(buildIdentity(alert))
	logs := markdown(buildLogs(alert.Logs, fileURL))

	blocks := []Block{
		{
			Type: blockHeader,
			Text: &Text{Type: textPlain, Text: headerText},
		},
		{
			Type: blockSection,
			Text: &identity,
		},
		{
			Type:   blockSection,
			Fields: buildStats(alert.RestartCount, alert.LastTermination),
		},
	}

	blocks = append(blocks, fieldSections(buildResources(alert.Resources, alert.Usage))...)

	return append(blocks, Block{
		Type: blockSection,
		Text: &logs,
	})
}

// fieldSections spreads fields over as many section blocks as Slack's field
// limit requires.
func fieldSections(fields []Text) []Block {
	blocks := make([]Block, 0, (len(fields)+maxSectionFields-1)/maxSectionFields)

	for start := 0; start < len(fields); start += maxSectionFields {
		end := min(start+maxSectionFields, len(fields))

		blocks = append(blocks, Block{
			Type:   blockSection,
			Fields: fields[start:end],
		})
	}

	return blocks
}

// FallbackText is shown in notifications and clients without block support.
func FallbackText(alert *notifier.Alert) string {
	return fmt.Sprintf("%s: %s (restart count %d)", headerText, alert.String(), alert.RestartCount)
}

func buildIdentity(alert *notifier.Alert) string {
	return fmt.Sprintf(
		"Namespace: %s\nPod: `%s`\nContainer Name: `%s`\nContainer Image: `%s`\nNode: %s",
		quoted(alert.Namespace),
		alert.PodName,
		alert.ContainerName,
		alert.Image,
		quoted(alert.NodeName),
	)
}

func buildStats(restartCount int32, term *notifier.TerminationInfo) []Text {
	fields := []Text{markdown(fmt.Sprintf("Restart Count: `%d`", restartCount))}
	if term == nil {
		return fields
	}

	signal := "none"
	if term.Signal != 0 {
		signal = fmt.Sprintf("`%d`", term.Signal)
	}

	return append(fields,
		// keeps the termination fields in the second row
		markdown(" "),
		markdown(fmt.Sprintf("Exit Code: `%d`", term.ExitCode)),
		markdown("Signal: "+signal),
		markdown("Reason: "+quoted(term.Reason)),
		markdown("Message: "+quoted(term.Message)),
		markdown("Started at: "+quotedTime(term.StartedAt)),
		markdown("Finished at: "+quotedTime(term.FinishedAt)),
	)
}

func buildResources(resources notifier.ResourceSpec, usage *notifier.ContainerUsage) []Text {
	fields := make([]Text, 0, len(resources.Limits)+len(resources.Requests)+2)

	if resources.IsEmpty() {
		fields = append(fields, markdown("No resource limits or requests"))
	}

	for _, q := range resources.Limits {
		fields = append(fields, markdown(fmt.Sprintf("%s limit: `%s`", q.Name, q.Quantity)))
	}

	for _, q := range resources.Requests {
		fields = append(fields, markdown(fmt.Sprintf("%s request: `%s`", q.Name, q.Quantity)))
	}

	if usage != nil {
		if usage.CPU != "" {
			fields = append(fields, markdown(fmt.Sprintf("cpu usage: `%s`", usage.CPU)))
		}

		if usage.Memory != "" {
			fields = append(fields, markdown(fmt.Sprintf("memory usage: `%s`", usage.Memory)))
		}
	}

	return fields
}

func buildLogs(logs notifier.LogResult, fileURL string) string {
	if logs.Failed() {
		return "Failed to get container logs: " + logs.Failure
	}

	text := trimLogs(logs.Text)
	if text == "" {
		return logsTitle + "\n(empty)"
	}

	title := logsTitle
	if fileURL != "" {
		title = fmt.Sprintf("<%s|%s>", fileURL, logsTitle)
	}

	return fmt.Sprintf("%s\n```\n%s\n```", title, summarizeLogs(text))
}

// trimLogs drops trailing whitespace. Logs that are empty afterwards are
// neither uploaded nor shown.
func trimLogs(text string) string {
	return strings.TrimRightFunc(text, unicode.IsSpace)
}

func quoted(value string) string {
	if value == "" {
		return unknownValue
	}

	return "`" + value + "`"
}

func quotedTime(value *time.Time) string {
	if value == nil {
		return unknownValue
	}

	return "`" + value.UTC().Format(time.RFC3339) + "`"
}

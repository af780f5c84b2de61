package slack

import (
	"fmt"

	"github.com/marcelsud/approval-bridge/approval"
	"github.com/slack-go/slack"
)

const (
	// ActionsBlockID identifies the block holding the decision buttons
	ActionsBlockID = "approval_actions"

	// Slack rejects sections with more fields than this
	maxSectionFields = 10
)

// Blocks renders a notification as Block Kit blocks
func Blocks(n approval.Notification) []slack.Block {
	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*", n.Title), false, false),
			nil, nil,
		),
	}

	for start := 0; start < len(n.Fields); start += maxSectionFields {
		end := min(start+maxSectionFields, len(n.Fields))
		fields := make([]*slack.TextBlockObject, 0, end-start)
		for _, f := range n.Fields[start:end] {
			fields = append(fields, slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*\n%s", f.Name, f.Value), false, false))
		}
		blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))
	}

	if len(n.Actions) > 0 {
		elements := make([]slack.BlockElement, 0, len(n.Actions))
		for _, a := range n.Actions {
			elements = append(elements, button(a))
		}
		blocks = append(blocks, slack.NewActionBlock(ActionsBlockID, elements...))
	}

	if n.Footer != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, n.Footer, false, false),
		))
	}

	return blocks
}

func button(a approval.Action) *slack.ButtonBlockElement {
	b := slack.NewButtonBlockElement(
		a.Decision.String(),
		a.Value,
		slack.NewTextBlockObject(slack.PlainTextType, a.Decision.Label(), false, false),
	)
	switch a.Decision {
	case approval.Approve:
		b = b.WithStyle(slack.StylePrimary)
	case approval.Reject:
		b = b.WithStyle(slack.StyleDanger)
		b.Confirm = slack.NewConfirmationBlockObject(
			slack.NewTextBlockObject(slack.PlainTextType, "Are you sure?", false, false),
			slack.NewTextBlockObject(slack.PlainTextType, "Are you sure?", false, false),
			slack.NewTextBlockObject(slack.PlainTextType, "Yes", false, false),
			slack.NewTextBlockObject(slack.PlainTextType, "No", false, false),
		)
	}
	return b
}

package export

import (
	"context"

	"github.com/jomei/notionapi"

	"github.com/Snakegate/ux-wcag-agent/internal/types"
)

// NotionExporter writes each finding as one page in a Notion database with
// Type/Rule/Severity/Element/Suggestion properties.
type NotionExporter struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

// NewNotionExporter creates an exporter for the given integration token and
// database ID.
func NewNotionExporter(token, databaseID string) *NotionExporter {
	return &NotionExporter{
		client:     notionapi.NewClient(notionapi.Token(token)),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

// Name identifies the destination.
func (n *NotionExporter) Name() string { return "notion" }

// Verify retrieves the target database to confirm the token and database ID
// are usable before any write.
func (n *NotionExporter) Verify(ctx context.Context) error {
	if _, err := n.client.Database.Get(ctx, n.databaseID); err != nil {
		return &Error{Service: "notion", Message: "database not accessible", Cause: err}
	}
	return nil
}

// Export creates one database page per finding, in report order. Rows
// written before a failure stay in Notion; the caller sees the error.
func (n *NotionExporter) Export(ctx context.Context, report *types.AuditReport) error {
	for _, row := range report.FindingRows() {
		req := &notionapi.PageCreateRequest{
			Parent: notionapi.Parent{
				Type:       notionapi.ParentTypeDatabaseID,
				DatabaseID: n.databaseID,
			},
			Properties: notionapi.Properties{
				"Type": notionapi.TitleProperty{
					Title: richText(row.Type),
				},
				"Rule": notionapi.RichTextProperty{
					RichText: richText(row.Rule),
				},
				"Severity": notionapi.SelectProperty{
					Select: notionapi.Option{Name: row.Severity},
				},
				"Element": notionapi.RichTextProperty{
					RichText: richText(row.Element),
				},
				"Suggestion": notionapi.RichTextProperty{
					RichText: richText(row.Suggestion),
				},
			},
		}
		if _, err := n.client.Page.Create(ctx, req); err != nil {
			return &Error{Service: "notion", Message: "failed to create page", Cause: err}
		}
	}
	return nil
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: content}}}
}

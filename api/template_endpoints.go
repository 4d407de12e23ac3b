package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jober-app/go-alimtalk-client/templates"
)

// templateRecord is the wire shape of a template; the server names the id
// field "templateId" while the client model calls it "id".
type templateRecord struct {
	TemplateID            int    `json:"templateId"`
	Title                 string `json:"title"`
	ParameterizedTemplate string `json:"parameterizedTemplate"`
}

// ListTemplates returns the templates of one space, normalized to the client
// model.
func (c *Client) ListTemplates(ctx context.Context, spaceID int) ([]templates.Template, error) {
	query := url.Values{"spaceId": []string{strconv.Itoa(spaceID)}}
	var records []templateRecord
	if err := c.do(ctx, http.MethodGet, RouteTemplateList, RouteTemplateList, query, nil, &records); err != nil {
		return nil, err
	}
	list := make([]templates.Template, len(records))
	for i, r := range records {
		list[i] = templates.Template{
			ID:                    r.TemplateID,
			Title:                 r.Title,
			ParameterizedTemplate: r.ParameterizedTemplate,
		}
	}
	return list, nil
}

// SaveTemplate creates or updates a template in a space.
func (c *Client) SaveTemplate(ctx context.Context, payload templates.SavePayload) error {
	return c.do(ctx, http.MethodPost, RouteTemplateSave, RouteTemplateSave, nil, payload, nil)
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, templateID int) error {
	body := map[string]int{"templateId": templateID}
	return c.do(ctx, http.MethodDelete, RouteTemplateDelete, RouteTemplateDelete, nil, body, nil)
}

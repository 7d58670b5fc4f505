package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wyre-technology/itglue-mcp/internal/itglue"
)

// Result is the outcome of one tool invocation, ready to be rendered as a
// single text content block.
type Result struct {
	Text    string
	IsError bool
}

// handler executes one tool against the API client. Returning an error never
// escapes the dispatcher; every error becomes an error content block.
type handler func(ctx context.Context, c *itglue.Client, creds itglue.Credentials, args Args) (any, error)

// handlers maps tool names onto behavior. Every catalog entry has exactly
// one handler (enforced by tests).
var handlers = map[string]handler{
	"search_organizations":   searchOrganizations,
	"get_organization":       getOrganization,
	"search_configurations":  searchConfigurations,
	"get_configuration":      getConfiguration,
	"search_passwords":       searchPasswords,
	"get_password":           getPassword,
	"search_documents":       searchDocuments,
	"search_flexible_assets": searchFlexibleAssets,
	"itglue_health_check":    healthCheck,
}

// Dispatcher routes named tool calls to API client calls. Credentials are
// fixed at construction; a fresh dispatcher is built per request under the
// HTTP transport so no state crosses requests.
type Dispatcher struct {
	creds itglue.Credentials
}

// NewDispatcher builds a dispatcher around explicit credentials.
func NewDispatcher(creds itglue.Credentials) *Dispatcher {
	return &Dispatcher{creds: creds}
}

// Call runs one tool invocation. It never panics and never returns a fault:
// unknown tools, missing credentials, missing arguments, and upstream
// failures all come back as error-flagged results.
func (d *Dispatcher) Call(ctx context.Context, name string, rawArgs map[string]any) Result {
	h, ok := handlers[name]
	if !ok {
		return Result{Text: "Unknown tool: " + name, IsError: true}
	}

	client, err := itglue.NewClient(d.creds)
	if err != nil {
		return Result{Text: err.Error(), IsError: true}
	}

	out, err := h(ctx, client, d.creds, Args(rawArgs))
	if err != nil {
		var missing *MissingArgumentError
		if errors.As(err, &missing) {
			return Result{Text: missing.Error(), IsError: true}
		}
		slog.Debug("tool call failed", "tool", name, "error", err)
		return Result{Text: "Error: " + err.Error(), IsError: true}
	}

	text, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return Result{Text: "Error: " + err.Error(), IsError: true}
	}
	return Result{Text: string(text)}
}

// searchParams assembles the common search parameters: truthy named
// arguments mapped onto their filter keys, sort passthrough, and paging
// with defaults of 50 per page starting at page 1.
func searchParams(args Args, filterKeys map[string]string) itglue.Params {
	filter := make(map[string]any)
	for argName, filterKey := range filterKeys {
		if v, ok := args[argName]; ok && truthy(v) {
			filter[filterKey] = v
		}
	}
	return itglue.Params{
		Filter: filter,
		Sort:   args.String("sort"),
		Page: itglue.Page{
			Size:   args.Int("page_size", 50),
			Number: args.Int("page_number", 1),
		},
	}
}

func searchOrganizations(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	params := searchParams(args, map[string]string{
		"name":                   "name",
		"organization_type_id":   "organizationTypeId",
		"organization_status_id": "organizationStatusId",
	})
	return c.Request(ctx, "/organizations", params)
}

func getOrganization(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	id := args.ID("id")
	if id == "" {
		return nil, &MissingArgumentError{Tool: "get_organization", Argument: "id"}
	}
	res, err := c.Get(ctx, "/organizations/"+id, itglue.Params{})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("organization %s not found", id)
	}
	return res, nil
}

func searchConfigurations(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	params := searchParams(args, map[string]string{
		"name":                    "name",
		"organization_id":         "organizationId",
		"configuration_type_id":   "configurationTypeId",
		"configuration_status_id": "configurationStatusId",
		"serial_number":           "serialNumber",
	})
	return c.Request(ctx, "/configurations", params)
}

func getConfiguration(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	id := args.ID("id")
	if id == "" {
		return nil, &MissingArgumentError{Tool: "get_configuration", Argument: "id"}
	}
	res, err := c.Get(ctx, "/configurations/"+id, itglue.Params{})
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("configuration %s not found", id)
	}
	return res, nil
}

func searchPasswords(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	params := searchParams(args, map[string]string{
		"name":                 "name",
		"organization_id":      "organizationId",
		"password_category_id": "passwordCategoryId",
	})
	// Search results must never carry secret values, no matter what the
	// caller passed.
	params.Extra = map[string]any{"show_password": false}
	return c.Request(ctx, "/passwords", params)
}

func getPassword(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	id := args.ID("id")
	if id == "" {
		return nil, &MissingArgumentError{Tool: "get_password", Argument: "id"}
	}
	params := itglue.Params{
		Extra: map[string]any{"show_password": args.Bool("show_password", true)},
	}
	res, err := c.Get(ctx, "/passwords/"+id, params)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("password %s not found", id)
	}
	return res, nil
}

func searchDocuments(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	orgID := args.ID("organization_id")
	if orgID == "" {
		return nil, &MissingArgumentError{Tool: "search_documents", Argument: "organization_id"}
	}
	params := searchParams(args, map[string]string{"name": "name"})
	// Documents are not a top-level collection; they hang off the
	// organization's relationships.
	return c.Request(ctx, "/organizations/"+orgID+"/relationships/documents", params)
}

func searchFlexibleAssets(ctx context.Context, c *itglue.Client, _ itglue.Credentials, args Args) (any, error) {
	typeID := args.ID("flexible_asset_type_id")
	if typeID == "" {
		return nil, &MissingArgumentError{Tool: "search_flexible_assets", Argument: "flexible_asset_type_id"}
	}
	params := searchParams(args, map[string]string{
		"organization_id": "organizationId",
		"name":            "name",
	})
	params.Filter["flexibleAssetTypeId"] = typeID
	return c.Request(ctx, "/flexible_assets", params)
}

func healthCheck(ctx context.Context, c *itglue.Client, creds itglue.Credentials, _ Args) (any, error) {
	result, err := c.Request(ctx, "/organization_types", itglue.Params{Page: itglue.Page{Size: 1}})
	if err != nil {
		return nil, err
	}
	return struct {
		Status                 string        `json:"status"`
		Message                string        `json:"message"`
		Region                 itglue.Region `json:"region"`
		OrganizationTypesFound int           `json:"organizationTypesFound"`
	}{
		Status:                 "ok",
		Message:                "IT Glue API connection successful",
		Region:                 creds.RegionOrDefault(),
		OrganizationTypesFound: result.Meta.TotalCount,
	}, nil
}

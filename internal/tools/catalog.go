// Package tools defines the MCP tool catalog and the dispatcher that maps
// tool invocations onto IT Glue API calls.
package tools

// ParamSpec describes one accepted tool parameter.
type ParamSpec struct {
	Type        string
	Description string
	Required    bool
}

// Definition declares one callable tool: name, description, and the schema
// of its parameters. The catalog is pure data; behavior lives in the
// dispatcher's handler table.
type Definition struct {
	Name        string
	Description string
	Params      map[string]ParamSpec
}

var pageParams = map[string]ParamSpec{
	"sort":        {Type: "string", Description: "Sort field, prefix with - for descending (e.g. -created-at)"},
	"page_size":   {Type: "integer", Description: "Results per page (default 50)"},
	"page_number": {Type: "integer", Description: "Page number to fetch (default 1)"},
}

// withPaging returns params merged with the shared sort/paging parameters.
func withPaging(params map[string]ParamSpec) map[string]ParamSpec {
	out := make(map[string]ParamSpec, len(params)+len(pageParams))
	for k, v := range params {
		out[k] = v
	}
	for k, v := range pageParams {
		out[k] = v
	}
	return out
}

// catalog is the static list of tools, in the order they are advertised.
var catalog = []Definition{
	{
		Name:        "search_organizations",
		Description: "Search IT Glue organizations by name, type, or status.",
		Params: withPaging(map[string]ParamSpec{
			"name":                   {Type: "string", Description: "Filter by organization name"},
			"organization_type_id":   {Type: "string", Description: "Filter by organization type ID"},
			"organization_status_id": {Type: "string", Description: "Filter by organization status ID"},
		}),
	},
	{
		Name:        "get_organization",
		Description: "Fetch a single IT Glue organization by ID.",
		Params: map[string]ParamSpec{
			"id": {Type: "string", Description: "Organization ID", Required: true},
		},
	},
	{
		Name:        "search_configurations",
		Description: "Search IT Glue configurations (devices/assets), optionally scoped to an organization.",
		Params: withPaging(map[string]ParamSpec{
			"name":                    {Type: "string", Description: "Filter by configuration name"},
			"organization_id":         {Type: "string", Description: "Filter by organization ID"},
			"configuration_type_id":   {Type: "string", Description: "Filter by configuration type ID"},
			"configuration_status_id": {Type: "string", Description: "Filter by configuration status ID"},
			"serial_number":           {Type: "string", Description: "Filter by serial number"},
		}),
	},
	{
		Name:        "get_configuration",
		Description: "Fetch a single IT Glue configuration by ID.",
		Params: map[string]ParamSpec{
			"id": {Type: "string", Description: "Configuration ID", Required: true},
		},
	},
	{
		Name:        "search_passwords",
		Description: "Search IT Glue password entries. Secret values are never included in search results; use get_password for a specific entry.",
		Params: withPaging(map[string]ParamSpec{
			"name":                 {Type: "string", Description: "Filter by password name"},
			"organization_id":      {Type: "string", Description: "Filter by organization ID"},
			"password_category_id": {Type: "string", Description: "Filter by password category ID"},
		}),
	},
	{
		Name:        "get_password",
		Description: "Fetch a single IT Glue password entry by ID, including the secret value unless show_password is false.",
		Params: map[string]ParamSpec{
			"id":            {Type: "string", Description: "Password ID", Required: true},
			"show_password": {Type: "boolean", Description: "Include the secret value (default true)"},
		},
	},
	{
		Name:        "search_documents",
		Description: "List IT Glue documents of an organization.",
		Params: withPaging(map[string]ParamSpec{
			"organization_id": {Type: "string", Description: "Organization whose documents to list", Required: true},
			"name":            {Type: "string", Description: "Filter by document name"},
		}),
	},
	{
		Name:        "search_flexible_assets",
		Description: "Search IT Glue flexible assets of a given flexible asset type.",
		Params: withPaging(map[string]ParamSpec{
			"flexible_asset_type_id": {Type: "string", Description: "Flexible asset type ID", Required: true},
			"organization_id":        {Type: "string", Description: "Filter by organization ID"},
			"name":                   {Type: "string", Description: "Filter by asset name"},
		}),
	},
	{
		Name:        "itglue_health_check",
		Description: "Verify connectivity and credentials against the IT Glue API.",
		Params:      map[string]ParamSpec{},
	},
}

// Catalog returns the static tool list, in advertised order.
func Catalog() []Definition {
	return catalog
}

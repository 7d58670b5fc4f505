package tools

import "testing"

func TestCatalogRequiredFields(t *testing.T) {
	required := map[string][]string{
		"search_organizations":   {},
		"get_organization":       {"id"},
		"search_configurations":  {},
		"get_configuration":      {"id"},
		"search_passwords":       {},
		"get_password":           {"id"},
		"search_documents":       {"organization_id"},
		"search_flexible_assets": {"flexible_asset_type_id"},
		"itglue_health_check":    {},
	}

	for _, def := range Catalog() {
		want, ok := required[def.Name]
		if !ok {
			t.Errorf("unexpected tool %q", def.Name)
			continue
		}

		var got []string
		for name, p := range def.Params {
			if p.Required {
				got = append(got, name)
			}
		}
		if len(got) != len(want) {
			t.Errorf("%s: required params = %v, want %v", def.Name, got, want)
			continue
		}
		for _, w := range want {
			if !def.Params[w].Required {
				t.Errorf("%s: param %q should be required", def.Name, w)
			}
		}
	}
}

func TestCatalogSearchToolsCarryPaging(t *testing.T) {
	for _, def := range Catalog() {
		if def.Name == "itglue_health_check" || def.Name[:4] == "get_" {
			continue
		}
		for _, p := range []string{"sort", "page_size", "page_number"} {
			if _, ok := def.Params[p]; !ok {
				t.Errorf("%s: missing %q parameter", def.Name, p)
			}
		}
	}
}

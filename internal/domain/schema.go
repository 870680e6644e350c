package domain

// Schema binds each field role the dashboard needs to the literal column
// header used by the dataset. Aggregation code looks fields up through a
// Schema and never spells a header itself.
type Schema struct {
	Sequence       string `json:"sequence"`
	District       string `json:"district"`
	ProjectType    string `json:"project_type"`
	Taluka         string `json:"taluka"`
	Storage        string `json:"storage"`
	StoragePercent string `json:"storage_percent"`
	Name           string `json:"name"`
}

// DefaultSchema returns the bindings for the department's published sheet.
func DefaultSchema() Schema {
	return Schema{
		Sequence:       "अ.क्र.",
		District:       "जिल्हा",
		ProjectType:    "प्रकल्प प्रकार",
		Taluka:         "तालुका",
		Storage:        "__2", // एकूण पाणीसाठा (total storage, MCFT)
		StoragePercent: "__3", // storage as % of design capacity
		Name:           "धरणाचे नाव",
	}
}

// WithOverrides returns a copy of s where every non-empty field of o
// replaces the corresponding binding.
func (s Schema) WithOverrides(o Schema) Schema {
	pick := func(cur, override string) string {
		if override != "" {
			return override
		}
		return cur
	}
	return Schema{
		Sequence:       pick(s.Sequence, o.Sequence),
		District:       pick(s.District, o.District),
		ProjectType:    pick(s.ProjectType, o.ProjectType),
		Taluka:         pick(s.Taluka, o.Taluka),
		Storage:        pick(s.Storage, o.Storage),
		StoragePercent: pick(s.StoragePercent, o.StoragePercent),
		Name:           pick(s.Name, o.Name),
	}
}

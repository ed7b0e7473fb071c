package forecast

// ModelSpec describes one entry of the fixed model catalog. Local entries
// are served by the embedded linear engine instead of the remote service.
type ModelSpec struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Local       bool   `json:"local,omitempty"`
}

// Catalog is the fixed set of models the form may offer. Ids outside this
// list are rejected during validation and never reach the inference boundary.
var Catalog = []ModelSpec{
	{ID: "lr", DisplayName: "Linear Regression"},
	{ID: "ridge_local", DisplayName: "Ridge (embedded)", Local: true},
	{ID: "rf", DisplayName: "Random Forest"},
	{ID: "gbr", DisplayName: "Gradient Boosting"},
	{ID: "gbr_tuned", DisplayName: "Gradient Boosting (tuned)"},
	{ID: "svr", DisplayName: "Support Vector Regression"},
	{ID: "knn", DisplayName: "K-Nearest Neighbors"},
}

// Recommended is the default selection the form preselects. It is a UX
// default only, with no bearing on correctness.
var Recommended = []string{"rf", "gbr_tuned", "ridge_local"}

// LookupModel returns the catalog entry for id.
func LookupModel(id string) (ModelSpec, bool) {
	for _, spec := range Catalog {
		if spec.ID == id {
			return spec, true
		}
	}
	return ModelSpec{}, false
}

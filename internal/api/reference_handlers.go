package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/heritageatlas/heritage-server/internal/domain"
)

func (s *Server) registerReferenceRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCountries",
		Method:      http.MethodGet,
		Path:        "/sites/countries",
		Summary:     "List countries",
		Description: "Returns the distinct country names in the dataset",
		Tags:        []string{"Reference"},
	}, s.handleListCountries)

	huma.Register(s.api, huma.Operation{
		OperationID: "listRegions",
		Method:      http.MethodGet,
		Path:        "/sites/regions",
		Summary:     "List regions",
		Description: "Returns the distinct region names in the dataset",
		Tags:        []string{"Reference"},
	}, s.handleListRegions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/sites/categories",
		Summary:     "List categories",
		Description: "Returns the distinct categories in the dataset",
		Tags:        []string{"Reference"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID: "listCriteria",
		Method:      http.MethodGet,
		Path:        "/sites/criteria",
		Summary:     "List criteria",
		Description: "Returns the static inscription criteria table",
		Tags:        []string{"Reference"},
	}, s.handleListCriteria)
}

// === DTOs ===

type ReferenceListOutput struct {
	Body struct {
		Values []string `json:"values"`
	}
}

// CriteriaTable is the static criteria lookup, split into cultural and
// natural codes.
type CriteriaTable struct {
	Cultural []domain.CriterionInfo `json:"cultural"`
	Natural  []domain.CriterionInfo `json:"natural"`
}

type CriteriaTableOutput struct {
	Body CriteriaTable
}

// === Handlers ===

func (s *Server) handleListCountries(ctx context.Context, _ *struct{}) (*ReferenceListOutput, error) {
	out := &ReferenceListOutput{}
	out.Body.Values = s.services.Reference.Countries(ctx)
	return out, nil
}

func (s *Server) handleListRegions(ctx context.Context, _ *struct{}) (*ReferenceListOutput, error) {
	out := &ReferenceListOutput{}
	out.Body.Values = s.services.Reference.Regions(ctx)
	return out, nil
}

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ReferenceListOutput, error) {
	out := &ReferenceListOutput{}
	out.Body.Values = s.services.Reference.Categories(ctx)
	return out, nil
}

func (s *Server) handleListCriteria(ctx context.Context, _ *struct{}) (*CriteriaTableOutput, error) {
	cultural, natural := s.services.Reference.Criteria(ctx)
	return &CriteriaTableOutput{Body: CriteriaTable{Cultural: cultural, Natural: natural}}, nil
}

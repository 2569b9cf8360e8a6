package services

import (
	"context"
	"strings"

	"gateway/internal/domain"
	"gateway/internal/domain/models"
	"gateway/internal/listquery"
	"gateway/internal/repositories"
	"gateway/internal/utils"
)

// RouteService keeps each route's distance in sync with its stops.
type RouteService struct {
	Repo   repositories.RouteRepository
	Limits ListLimits
}

func (s RouteService) List(ctx context.Context, tenantID int64, q listquery.Directives) (domain.Page[models.Route], error) {
	paging, spec, err := resolveList(q, repositories.RouteSortColumns, s.Limits)
	if err != nil {
		return domain.Page[models.Route]{}, err
	}
	items, total, err := s.Repo.List(ctx, tenantID, spec)
	if err != nil {
		return domain.Page[models.Route]{}, err
	}
	return domain.NewPage(items, paging, total), nil
}

func (s RouteService) Get(ctx context.Context, tenantID, id int64) (models.Route, error) {
	return s.Repo.GetByID(ctx, tenantID, id)
}

func (s RouteService) Create(ctx context.Context, tenantID int64, p models.RoutePayload) (models.Route, error) {
	rt, err := routeFromPayload(tenantID, p)
	if err != nil {
		return models.Route{}, err
	}
	id, err := s.Repo.Create(ctx, rt)
	if err != nil {
		return models.Route{}, err
	}
	rt.ID = id
	return rt, nil
}

func (s RouteService) Update(ctx context.Context, tenantID, id int64, p models.RoutePayload) (models.Route, error) {
	rt, err := routeFromPayload(tenantID, p)
	if err != nil {
		return models.Route{}, err
	}
	rt.ID = id
	if err := s.Repo.Update(ctx, rt); err != nil {
		return models.Route{}, err
	}
	return rt, nil
}

func (s RouteService) Delete(ctx context.Context, tenantID, id int64) error {
	return s.Repo.Delete(ctx, tenantID, id)
}

func routeFromPayload(tenantID int64, p models.RoutePayload) (models.Route, error) {
	name := utils.NormalizeSpace(p.Name)
	if name == "" {
		return models.Route{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	if len(p.Stops) < 2 {
		return models.Route{}, domain.ValidationError{Field: "stops", Msg: "a route needs at least two stops"}
	}

	stops := make([]models.Stop, len(p.Stops))
	points := make([]utils.Point, len(p.Stops))
	for i, st := range p.Stops {
		if err := validateCoordinate("stop", st.Lat, st.Lng); err != nil {
			return models.Route{}, err
		}
		stops[i] = models.Stop{Label: strings.TrimSpace(st.Label), Lat: st.Lat, Lng: st.Lng}
		points[i] = utils.Point{Lat: st.Lat, Lng: st.Lng}
	}

	return models.Route{
		TenantID:   tenantID,
		Name:       name,
		Stops:      stops,
		DistanceKm: utils.RoundTo(utils.PathKm(points), 3),
	}, nil
}

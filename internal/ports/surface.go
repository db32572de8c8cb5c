package ports

import "meetup-point-service/internal/domain"

// Surface is the rendering target of the pipeline. Every artifact is removable
// through the handle it was created with.
type Surface interface {
	RenderMarker(pos domain.LatLng, icon domain.Icon, title, infoHTML string) domain.Handle
	RenderCircle(center domain.LatLng, radiusMeters int) domain.Handle
	Restyle(h domain.Handle, icon domain.Icon) bool
	Remove(h domain.Handle) bool
	SetRoute(r *domain.Route)
	ClearRoute()
	Clear()
}

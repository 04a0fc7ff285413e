package internal

import (
	"hobbyboard/internal/controllers"
	"hobbyboard/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/visit", http.HandlerFunc(apiController.RecordVisit))
	routers.Get("/summary", http.HandlerFunc(apiController.GetSummary))
	routers.Get("/hobbies", http.HandlerFunc(apiController.GetHobbies))
	routers.Get("/comments", http.HandlerFunc(apiController.GetComments))
	routers.Post("/comments", http.HandlerFunc(apiController.AddComment))
	routers.Get("/attendance", http.HandlerFunc(apiController.GetAttendance))
	routers.Post("/attendance", http.HandlerFunc(apiController.CheckIn))
	routers.Get("/gallery", http.HandlerFunc(apiController.GetGallery))
	routers.Get("/gallery/image", http.HandlerFunc(apiController.GetGalleryImage))
	routers.Post("/gallery/like", http.HandlerFunc(apiController.ToggleLike))
	routers.Post("/gallery/comments", http.HandlerFunc(apiController.AddGalleryComment))
	return routers
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/studio-showcase/internal/handler"
	"github.com/iliyamo/studio-showcase/internal/middleware"
)

// Content bundles the resource handlers.
type Content struct {
	Images         *handler.ImageHandler
	Categories     *handler.CategoryHandler
	HeroSlides     *handler.HeroSlideHandler
	Testimonials   *handler.TestimonialHandler
	SocialMedia    *handler.SocialMediaHandler
	BusinessHours  *handler.BusinessHoursHandler
	ContactDetails *handler.ContactDetailsHandler
}

// RegisterContent mounts the resource routers under /api. Reads are public
// and cacheable; every write requires an admin bearer token.
func RegisterContent(e *echo.Echo, h Content, d Deps) {
	api := e.Group("/api", optional(d.Cache)...)
	jwt := middleware.JWTAuth(d.Guard)
	admin := []echo.MiddlewareFunc{jwt, middleware.RequireAdmin(d.Guard)}

	img := api.Group("/images")
	img.GET("", h.Images.List)
	img.GET("/my-images", h.Images.Mine, jwt)
	img.GET("/:id", h.Images.Get)
	img.POST("", h.Images.Upload, admin...)
	img.PUT("/:id", h.Images.Update, admin...)
	img.DELETE("/:id", h.Images.Delete, admin...)

	cat := api.Group("/categories")
	cat.GET("", h.Categories.List)
	cat.GET("/slug/:slug", h.Categories.GetBySlug)
	cat.GET("/:id", h.Categories.Get)
	cat.POST("", h.Categories.Create, admin...)
	cat.PUT("/:id", h.Categories.Update, admin...)
	cat.DELETE("/:id", h.Categories.Delete, admin...)

	hs := api.Group("/hero-slides")
	hs.GET("", h.HeroSlides.List)
	hs.GET("/:id", h.HeroSlides.Get)
	hs.POST("", h.HeroSlides.Create, admin...)
	hs.PUT("/:id", h.HeroSlides.Update, admin...)
	hs.DELETE("/:id", h.HeroSlides.Delete, admin...)

	ts := api.Group("/testimonials")
	ts.GET("", h.Testimonials.List)
	ts.GET("/featured", h.Testimonials.Featured)
	ts.GET("/:id", h.Testimonials.Get)
	ts.POST("", h.Testimonials.Create, admin...)
	ts.PUT("/:id", h.Testimonials.Update, admin...)
	ts.DELETE("/:id", h.Testimonials.Delete, admin...)

	sm := api.Group("/social-media")
	sm.GET("", h.SocialMedia.List)
	sm.GET("/:id", h.SocialMedia.Get)
	sm.POST("", h.SocialMedia.Create, admin...)
	sm.PUT("/:id", h.SocialMedia.Update, admin...)
	sm.DELETE("/:id", h.SocialMedia.Delete, admin...)

	bh := api.Group("/business-hours")
	bh.GET("", h.BusinessHours.List)
	bh.GET("/:day", h.BusinessHours.Get)
	bh.POST("", h.BusinessHours.Create, admin...)
	bh.PUT("/:day", h.BusinessHours.Update, admin...)
	bh.DELETE("/:day", h.BusinessHours.Delete, admin...)

	cd := api.Group("/contact-details")
	cd.GET("", h.ContactDetails.List)
	cd.GET("/:id", h.ContactDetails.Get)
	cd.POST("", h.ContactDetails.Create, admin...)
	cd.PUT("/:id", h.ContactDetails.Update, admin...)
	cd.DELETE("/:id", h.ContactDetails.Delete, admin...)
}

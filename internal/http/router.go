package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Manu2954/Buildora-sub000/internal/auth"
)

// RouterConfig collects everything the route tree needs. Construction of
// the handlers stays in main; this only wires paths to them.
type RouterConfig struct {
	Tokens         *auth.TokenManager
	RequestTimeout time.Duration

	Auth          *AuthHandler
	Cart          *CartHandler
	Checkout      *CheckoutHandler
	Products      *ProductHandler
	Leads         *LeadHandler
	Ads           *AdvertisementHandler
	Companies     *CompanyHandler
	AdminProducts *AdminProductHandler
	AdminUsers    *AdminUserHandler
	AdminOrders   *AdminOrderHandler
	AdminImages   *AdminImageHandler
}

func NewRouter(c RouterConfig) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(c.RequestTimeout))
	r.Use(middleware.Compress(5))

	requireAuth := Authenticator(c.Tokens)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront surface
		r.Post("/auth/register", c.Auth.Register)
		r.Post("/auth/login", c.Auth.Login)
		r.Post("/admin/auth/login", c.Auth.AdminLogin)

		r.Get("/products", c.Products.ListProducts)
		r.Get("/products/{product_id}", c.Products.GetProduct)
		r.Get("/advertisements", c.Ads.ListLive)
		r.Post("/leads", c.Leads.CreateLead)

		// Shopper surface
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/profile", c.Auth.Profile)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", c.Cart.GetCart)
				r.Put("/", c.Cart.ReplaceCart)
				r.Delete("/", c.Cart.ClearCart)
				r.Post("/items", c.Cart.AddItem)
				r.Put("/items/{cart_item_id}", c.Cart.UpdateQuantity)
				r.Delete("/items/{cart_item_id}", c.Cart.RemoveItem)
			})

			r.Post("/orders", c.Checkout.PlaceOrder)
			r.Get("/orders", c.Checkout.ListMyOrders)
			r.Get("/orders/{order_id}", c.Checkout.GetMyOrder)

			r.Post("/products/{product_id}/reviews", c.Products.AddReview)
		})

		// Back-office surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(requireAuth)
			r.Use(AdminOnly)

			r.Route("/companies", func(r chi.Router) {
				r.Get("/", c.Companies.List)
				r.Post("/", c.Companies.Create)
				r.Get("/{company_id}", c.Companies.Get)
				r.Put("/{company_id}", c.Companies.Update)
				r.Delete("/{company_id}", c.Companies.Delete)
				r.Post("/{company_id}/products/bulk", c.AdminProducts.BulkUpload)
			})

			r.Route("/products", func(r chi.Router) {
				r.Post("/", c.AdminProducts.Create)
				r.Put("/{product_id}", c.AdminProducts.Update)
				r.Delete("/{product_id}", c.AdminProducts.Delete)
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", c.AdminUsers.List)
				r.Put("/{user_id}/active", c.AdminUsers.SetActive)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", c.AdminOrders.List)
				r.Get("/{order_id}", c.AdminOrders.Get)
				r.Put("/{order_id}/status", c.AdminOrders.UpdateStatus)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", c.Leads.ListLeads)
				r.Put("/{lead_id}/status", c.Leads.UpdateLeadStatus)
			})

			r.Route("/advertisements", func(r chi.Router) {
				r.Get("/", c.Ads.ListAll)
				r.Post("/", c.Ads.Create)
				r.Put("/{ad_id}", c.Ads.Update)
				r.Delete("/{ad_id}", c.Ads.Delete)
			})

			r.Route("/images", func(r chi.Router) {
				r.Get("/", c.AdminImages.List)
				r.Post("/", c.AdminImages.Register)
				r.Delete("/{image_id}", c.AdminImages.Delete)
			})
		})
	})

	return r
}

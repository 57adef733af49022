// Package routes wires controllers to the router. Construction of the
// controllers happens in internal/server; this package only declares the
// route table.
package routes

import (
	"net/http"

	"github.com/totaltools/manufacturing-api/app/controllers"
	"github.com/totaltools/manufacturing-api/app/repositories"
	"github.com/totaltools/manufacturing-api/pkg/metrics"
	"github.com/totaltools/manufacturing-api/pkg/middleware"
	"github.com/totaltools/manufacturing-api/pkg/response"
	"github.com/totaltools/manufacturing-api/pkg/router"
)

// Deps carries everything the route table needs. Users doubles as the role
// lookup behind the admin guard.
type Deps struct {
	Users repositories.UserStore

	Products *controllers.ProductController
	Orders   *controllers.OrderController
	Accounts *controllers.UserController
	Reviews  *controllers.ReviewController
	Profiles *controllers.ProfileController
	Contacts *controllers.ContactController
	Payments *controllers.PaymentController
}

func RegisterAPI(r *router.Router, d Deps) {
	authed := middleware.Authenticate
	admin := []router.Middleware{middleware.Authenticate, middleware.RequireAdmin(d.Users)}

	r.Get("/", "home", func(w http.ResponseWriter, _ *http.Request) {
		response.Success(w, "TotalTools manufacturing API is running")
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Products
	r.Post("/products", "products.store", d.Products.Create, admin...)
	r.Get("/products", "products.index", d.Products.List)
	r.Get("/products/{id}", "products.show", d.Products.Show)
	r.Patch("/products/{id}", "products.quantity", d.Products.UpdateQuantity)
	r.Patch("/product/{id}", "products.update", d.Products.Update, admin...)
	r.Delete("/products/{id}", "products.destroy", d.Products.Delete, authed)
	r.Post("/products/{id}/picture", "products.picture", d.Products.UploadPicture, admin...)

	// Users
	r.Get("/users", "users.index", d.Accounts.List, authed)
	r.Get("/admin/{email}", "users.admin_check", d.Accounts.AdminCheck)
	r.Put("/users/admin/{email}", "users.grant_admin", d.Accounts.GrantAdmin, admin...)
	r.Put("/users/{email}", "users.upsert", d.Accounts.Upsert)
	r.Delete("/users/{email}", "users.destroy", d.Accounts.Delete, admin...)

	// Orders
	r.Post("/orders", "orders.store", d.Orders.Create)
	r.Get("/allOrders", "orders.all", d.Orders.ListAll, authed)
	r.Get("/orders", "orders.own", d.Orders.ListOwn, authed)
	r.Get("/orders/{id}", "orders.show", d.Orders.Show, authed)
	r.Patch("/orders/{id}", "orders.pay", d.Orders.Pay, authed)
	r.Patch("/manageAllOrders/{id}", "orders.ship", d.Orders.Ship, admin...)
	r.Delete("/orders/{id}", "orders.destroy", d.Orders.Delete, authed)

	// Payments
	r.Post("/create-payment-intent", "payments.intent", d.Payments.CreateIntent, authed)

	// Reviews
	r.Post("/reviews", "reviews.store", d.Reviews.Create, authed)
	r.Get("/reviews", "reviews.index", d.Reviews.ListByEmail)

	// Profiles
	r.Post("/profile", "profiles.store", d.Profiles.Create)
	r.Get("/profile/{email}", "profiles.show", d.Profiles.Show)
	r.Put("/profile/{email}", "profiles.upsert", d.Profiles.Upsert)

	// Contact
	r.Post("/contactus", "contact.store", d.Contacts.Create, authed)
}

package router

import (
	authhandler "marketplace_backend/internal/feature/auth/transport/handler"
	offerhandler "marketplace_backend/internal/feature/offers/transport/handler"
	paymenthandler "marketplace_backend/internal/feature/payment/transport/handler"
	"marketplace_backend/internal/platform/http/handler"

	"github.com/gin-gonic/gin"
)

// NewRouter assembles the HTTP route table.
// Signup, login and offer reads are public; publishing, deletion and
// payments require a bearer token.
func NewRouter(auth *authhandler.AuthHandler, offers *offerhandler.OfferHandler,
	payments *paymenthandler.PaymentHandler, authUC authhandler.AuthUsecase) *gin.Engine {
	r := gin.Default()

	// Liveness probe
	r.GET("/healthz", handler.Health)

	// Account registration and login
	r.POST("/user/signup", auth.Signup)
	r.POST("/user/login", auth.Login)

	// Public offer browsing
	r.GET("/offers", offers.List)
	r.GET("/offer/:id", offers.GetByID)

	// Routes requiring a resolved bearer token
	protected := r.Group("/")
	protected.Use(authhandler.AuthRequired(authUC))
	{
		protected.POST("/offer/publish", offers.Publish)
		protected.DELETE("/offer/delete/:id", offers.Delete)
		protected.POST("/payment", payments.Charge)
	}

	return r
}

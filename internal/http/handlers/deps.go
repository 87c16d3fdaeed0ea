package handlers

import (
	"github.com/jmoiron/sqlx"

	"sweetnirwana/internal/catalog"
	"sweetnirwana/internal/config"
	"sweetnirwana/internal/repos"
	"sweetnirwana/internal/services"
	"sweetnirwana/internal/store"
)

type Deps struct {
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	AuthHandler     *AuthHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, snapshots store.SnapshotStore, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	var gw catalog.Gateway = catalog.NewLocal(prodRepo)
	if cfg.CatalogURL != "" {
		gw = catalog.NewClient(cfg.CatalogURL)
	}

	catalogSvc := services.NewCatalogService(gw)
	cartSvc := services.NewCartService(gw, snapshots)
	checkoutSvc := services.NewCheckoutService(cartSvc, gw, orderRepo)
	imageSvc := &services.ImageService{MediaDir: cfg.MediaDir}

	return &Deps{
		ProductHandler:  &ProductHandler{Catalog: catalogSvc, Prods: prodRepo, Images: imageSvc},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Checkout: checkoutSvc, Orders: orderRepo},
		AuthHandler:     &AuthHandler{Auth: auth},
	}
}

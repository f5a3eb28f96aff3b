package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otkirbek-shop/go-storefront/internal/usecase"
	"github.com/otkirbek-shop/go-storefront/pkg/logger"
)

type FavoritesHandler struct {
	favoritesUsecase usecase.FavoritesUC
	logger           logger.Logger
}

func NewFavoritesHandler(favoritesUsecase usecase.FavoritesUC, logger logger.Logger) *FavoritesHandler {
	return &FavoritesHandler{favoritesUsecase: favoritesUsecase, logger: logger}
}

// listFavorites
//
//	@Summary	Избранные товары
//	@Tags		favorites
//	@Produce	json
//	@Success	200	{object}	favoritesResponse
//	@Router		/favorites [get]
func (h *FavoritesHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	ids, err := h.favoritesUsecase.List(r.Context(), user.ID)
	if err != nil {
		h.logger.Warnf("Failed to list favorites for user %d: %v", user.ID, err)
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, favoritesResponse{ProductIDs: ids})
}

// addFavorite
//
//	@Summary	Добавление в избранное
//	@Tags		favorites
//	@Produce	json
//	@Param		productID	path	string	true	"ID товара"
//	@Success	204
//	@Router		/favorites/{productID} [put]
func (h *FavoritesHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.favoritesUsecase.Add(r.Context(), user.ID, chi.URLParam(r, "productID")); err != nil {
		h.logger.Warnf("Failed to add favorite for user %d: %v", user.ID, err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// removeFavorite
//
//	@Summary	Удаление из избранного
//	@Tags		favorites
//	@Produce	json
//	@Param		productID	path	string	true	"ID товара"
//	@Success	204
//	@Router		/favorites/{productID} [delete]
func (h *FavoritesHandler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	user, err := userFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.favoritesUsecase.Remove(r.Context(), user.ID, chi.URLParam(r, "productID")); err != nil {
		h.logger.Warnf("Failed to remove favorite for user %d: %v", user.ID, err)
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-menu-cache/hierarchy"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type handler struct {
	repo   hierarchy.Store
	logger *zap.Logger
	health func(ctx context.Context) error
}

// pathIDs resolves the ids in the route. A malformed id cannot name an
// existing row, so it is answered with not found for the kind it names.
func (h *handler) pathIDs(w http.ResponseWriter, r *http.Request, params ...string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(params))
	for _, p := range params {
		id, err := uuid.Parse(chi.URLParam(r, p))
		if err != nil {
			h.notFound(w, r, paramKinds[p])
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

var paramKinds = map[string]hierarchy.Kind{
	"menuID":    hierarchy.KindMenu,
	"submenuID": hierarchy.KindSubmenu,
	"dishID":    hierarchy.KindDish,
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, r, hierarchy.InvalidInput(err))
		return false
	}
	return true
}

func (h *handler) deleted(w http.ResponseWriter, r *http.Request, kind hierarchy.Kind) {
	h.respond(w, r, http.StatusOK, deleteResponse{Status: true, Message: "The " + string(kind) + " has been deleted"})
}

// Menus

func (h *handler) listMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.repo.ListMenus(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if menus == nil {
		menus = []hierarchy.Menu{}
	}
	h.respond(w, r, http.StatusOK, menus)
}

func (h *handler) getMenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID")
	if !ok {
		return
	}
	menu, found, err := h.repo.GetMenu(r.Context(), ids[0])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !found {
		h.notFound(w, r, hierarchy.KindMenu)
		return
	}
	h.respond(w, r, http.StatusOK, menu)
}

func (h *handler) createMenu(w http.ResponseWriter, r *http.Request) {
	var in hierarchy.MenuInput
	if !h.decode(w, r, &in) {
		return
	}
	menu, err := h.repo.CreateMenu(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, menu)
}

func (h *handler) updateMenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID")
	if !ok {
		return
	}
	var patch hierarchy.MenuPatch
	if !h.decode(w, r, &patch) {
		return
	}
	menu, err := h.repo.UpdateMenu(r.Context(), ids[0], patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, menu)
}

func (h *handler) deleteMenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID")
	if !ok {
		return
	}
	if _, err := h.repo.DeleteMenu(r.Context(), ids[0]); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.deleted(w, r, hierarchy.KindMenu)
}

// Submenus

func (h *handler) listSubmenus(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID")
	if !ok {
		return
	}
	subs, err := h.repo.ListSubmenus(r.Context(), ids[0])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if subs == nil {
		subs = []hierarchy.Submenu{}
	}
	h.respond(w, r, http.StatusOK, subs)
}

func (h *handler) getSubmenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID")
	if !ok {
		return
	}
	sub, found, err := h.repo.GetSubmenu(r.Context(), ids[0], ids[1])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !found {
		h.notFound(w, r, hierarchy.KindSubmenu)
		return
	}
	h.respond(w, r, http.StatusOK, sub)
}

func (h *handler) createSubmenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID")
	if !ok {
		return
	}
	var in hierarchy.SubmenuInput
	if !h.decode(w, r, &in) {
		return
	}
	sub, err := h.repo.CreateSubmenu(r.Context(), ids[0], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, sub)
}

func (h *handler) updateSubmenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID")
	if !ok {
		return
	}
	var patch hierarchy.SubmenuPatch
	if !h.decode(w, r, &patch) {
		return
	}
	sub, err := h.repo.UpdateSubmenu(r.Context(), ids[0], ids[1], patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, sub)
}

func (h *handler) deleteSubmenu(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID")
	if !ok {
		return
	}
	if _, err := h.repo.DeleteSubmenu(r.Context(), ids[0], ids[1]); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.deleted(w, r, hierarchy.KindSubmenu)
}

// Dishes

func (h *handler) listDishes(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID")
	if !ok {
		return
	}
	dishes, err := h.repo.ListDishes(r.Context(), ids[0], ids[1])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if dishes == nil {
		dishes = []hierarchy.Dish{}
	}
	h.respond(w, r, http.StatusOK, dishes)
}

func (h *handler) getDish(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID", "dishID")
	if !ok {
		return
	}
	dish, found, err := h.repo.GetDish(r.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !found {
		h.notFound(w, r, hierarchy.KindDish)
		return
	}
	h.respond(w, r, http.StatusOK, dish)
}

func (h *handler) createDish(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID")
	if !ok {
		return
	}
	var in hierarchy.DishInput
	if !h.decode(w, r, &in) {
		return
	}
	dish, err := h.repo.CreateDish(r.Context(), ids[0], ids[1], in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, dish)
}

func (h *handler) updateDish(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID", "dishID")
	if !ok {
		return
	}
	var patch hierarchy.DishPatch
	if !h.decode(w, r, &patch) {
		return
	}
	dish, err := h.repo.UpdateDish(r.Context(), ids[0], ids[1], ids[2], patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, http.StatusOK, dish)
}

func (h *handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.pathIDs(w, r, "menuID", "submenuID", "dishID")
	if !ok {
		return
	}
	if err := h.repo.DeleteDish(r.Context(), ids[0], ids[1], ids[2]); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.deleted(w, r, hierarchy.KindDish)
}

func (h *handler) tree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.repo.Tree(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if tree == nil {
		tree = []hierarchy.MenuTree{}
	}
	h.respond(w, r, http.StatusOK, tree)
}

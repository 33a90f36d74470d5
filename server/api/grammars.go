package api

import (
	"errors"
	"net/http"

	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/dekarrin/brickgrammar/server/result"
)

func grammarToModel(g dao.Grammar) GrammarModel {
	return GrammarModel{
		URI:      PathPrefix + "/grammars/" + g.ID.String(),
		ID:       g.ID.String(),
		Name:     g.Name,
		Source:   g.Source,
		Created:  formatTime(g.Created),
		Modified: formatTime(g.Modified),
	}
}

// HTTPCreateGrammar returns a HandlerFunc that parses and stores a new
// grammar.
func (api API) HTTPCreateGrammar() http.HandlerFunc {
	return api.Endpoint(api.epCreateGrammar)
}

func (api API) epCreateGrammar(req *http.Request) result.Result {
	var create GrammarCreateRequest
	if err := parseJSON(req, &create); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if create.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if create.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}

	if _, err := grammar.Load(create.Source); err != nil {
		return result.BadRequest("source: "+err.Error(), "grammar source invalid: %s", err.Error())
	}

	g, err := api.DB.Grammars().Create(req.Context(), dao.Grammar{Name: create.Name, Source: create.Source})
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return result.Conflict("A grammar with that name already exists", "grammar '%s' already exists", create.Name)
		}
		return result.InternalServerError("could not create grammar: " + err.Error())
	}

	return result.Created(grammarToModel(g), "grammar '%s' (%s) created", g.Name, g.ID)
}

// HTTPGetAllGrammars returns a HandlerFunc that retrieves all stored
// grammars.
func (api API) HTTPGetAllGrammars() http.HandlerFunc {
	return api.Endpoint(api.epGetAllGrammars)
}

func (api API) epGetAllGrammars(req *http.Request) result.Result {
	all, err := api.DB.Grammars().GetAll(req.Context())
	if err != nil {
		return result.InternalServerError("could not get grammars: " + err.Error())
	}

	resp := make([]GrammarModel, len(all))
	for i := range all {
		resp[i] = grammarToModel(all[i])
	}
	return result.OK(resp, "got all grammars")
}

// HTTPGetGrammar returns a HandlerFunc that retrieves a single grammar by ID.
func (api API) HTTPGetGrammar() http.HandlerFunc {
	return api.Endpoint(api.epGetGrammar)
}

func (api API) epGetGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	g, err := api.DB.Grammars().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get grammar: " + err.Error())
	}

	return result.OK(grammarToModel(g), "got grammar '%s'", g.Name)
}

// HTTPUpdateGrammar returns a HandlerFunc that updates an existing grammar's
// name and/or source.
func (api API) HTTPUpdateGrammar() http.HandlerFunc {
	return api.Endpoint(api.epUpdateGrammar)
}

func (api API) epUpdateGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	var update GrammarCreateRequest
	if err := parseJSON(req, &update); err != nil {
		return result.BadRequest(err.Error(), err.Error())
	}
	if update.Name == "" {
		return result.BadRequest("name: property is empty or missing from request", "empty name")
	}
	if update.Source == "" {
		return result.BadRequest("source: property is empty or missing from request", "empty source")
	}

	if _, err := grammar.Load(update.Source); err != nil {
		return result.BadRequest("source: "+err.Error(), "grammar source invalid: %s", err.Error())
	}

	existing, err := api.DB.Grammars().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get grammar: " + err.Error())
	}

	existing.Name = update.Name
	existing.Source = update.Source

	updated, err := api.DB.Grammars().Update(req.Context(), id, existing)
	if err != nil {
		if errors.Is(err, dao.ErrConstraintViolation) {
			return result.Conflict("A grammar with that name already exists", "grammar '%s' already exists", update.Name)
		}
		return result.InternalServerError("could not update grammar: " + err.Error())
	}

	return result.OK(grammarToModel(updated), "grammar '%s' (%s) updated", updated.Name, updated.ID)
}

// HTTPDeleteGrammar returns a HandlerFunc that deletes a grammar.
func (api API) HTTPDeleteGrammar() http.HandlerFunc {
	return api.Endpoint(api.epDeleteGrammar)
}

func (api API) epDeleteGrammar(req *http.Request) result.Result {
	id := requireIDParam(req)

	deleted, err := api.DB.Grammars().Delete(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete grammar: " + err.Error())
	}

	return result.NoContent("grammar '%s' deleted", deleted.Name)
}

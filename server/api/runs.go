package api

import (
	"errors"
	"math/rand"
	"net/http"
	"time"

	"github.com/dekarrin/brickgrammar/internal/generate"
	"github.com/dekarrin/brickgrammar/internal/grammar"
	"github.com/dekarrin/brickgrammar/internal/ldraw"
	"github.com/dekarrin/brickgrammar/internal/placement"
	"github.com/dekarrin/brickgrammar/server/dao"
	"github.com/dekarrin/brickgrammar/server/result"
)

const defaultMaxSentenceLen = 1000

func runToModel(r dao.Run) RunModel {
	return RunModel{
		URI:            PathPrefix + "/runs/" + r.ID.String(),
		ID:             r.ID.String(),
		GrammarID:      r.GrammarID.String(),
		Seed:           r.Seed,
		MaxSentenceLen: r.MaxSentenceLen,
		Sentence:       r.Sentence,
		LDraw:          r.LDraw,
		ElementCount:   r.ElementCount,
		VoxelCount:     r.VoxelCount,
		Created:        formatTime(r.Created),
	}
}

// HTTPCreateRun returns a HandlerFunc that generates a sentence from the
// named grammar, interprets it, and persists the result as a Run.
func (api API) HTTPCreateRun() http.HandlerFunc {
	return api.Endpoint(api.epCreateRun)
}

func (api API) epCreateRun(req *http.Request) result.Result {
	grammarID := requireIDParam(req)

	storedGrammar, err := api.DB.Grammars().GetByID(req.Context(), grammarID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get grammar: " + err.Error())
	}

	var create RunCreateRequest
	// the request body is optional; absence just means "use defaults".
	if req.ContentLength > 0 {
		if err := parseJSON(req, &create); err != nil {
			return result.BadRequest(err.Error(), err.Error())
		}
	}

	maxLen := create.MaxSentenceLen
	if maxLen <= 0 {
		maxLen = defaultMaxSentenceLen
	}

	seed := create.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	g, err := grammar.Load(storedGrammar.Source)
	if err != nil {
		return result.InternalServerError("stored grammar is no longer valid: " + err.Error())
	}

	cache := placement.NewCache()
	sentence, err := generate.Generate(g, cache, maxLen, rng)
	if err != nil {
		return result.BadRequest("generation failed: "+err.Error(), "grammar '%s': generation failed: %s", storedGrammar.Name, err.Error())
	}

	elements, img, _, err := cache.Parse(sentence.Lexemes())
	if err != nil {
		return result.InternalServerError("interpreting generated sentence: " + err.Error())
	}

	model := ldraw.Encode(elements)

	newRun := dao.Run{
		GrammarID:      grammarID,
		Seed:           seed,
		MaxSentenceLen: maxLen,
		Sentence:       sentence.Lexemes(),
		LDraw:          model,
		ElementCount:   len(elements),
		VoxelCount:     img.Len(),
	}

	created, err := api.DB.Runs().Create(req.Context(), newRun)
	if err != nil {
		return result.InternalServerError("could not save run: " + err.Error())
	}

	return result.Created(runToModel(created), "grammar '%s': run %s created (%d elements, %d voxels)", storedGrammar.Name, created.ID, created.ElementCount, created.VoxelCount)
}

// HTTPGetRunsForGrammar returns a HandlerFunc that lists all runs recorded
// for a grammar.
func (api API) HTTPGetRunsForGrammar() http.HandlerFunc {
	return api.Endpoint(api.epGetRunsForGrammar)
}

func (api API) epGetRunsForGrammar(req *http.Request) result.Result {
	grammarID := requireIDParam(req)

	if _, err := api.DB.Grammars().GetByID(req.Context(), grammarID); err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get grammar: " + err.Error())
	}

	runs, err := api.DB.Runs().GetAllByGrammar(req.Context(), grammarID)
	if err != nil {
		return result.InternalServerError("could not get runs: " + err.Error())
	}

	resp := make([]RunModel, len(runs))
	for i := range runs {
		resp[i] = runToModel(runs[i])
	}
	return result.OK(resp, "got all runs for grammar %s", grammarID)
}

// HTTPGetRun returns a HandlerFunc that retrieves a single recorded run.
func (api API) HTTPGetRun() http.HandlerFunc {
	return api.Endpoint(api.epGetRun)
}

func (api API) epGetRun(req *http.Request) result.Result {
	id := requireIDParam(req)

	r, err := api.DB.Runs().GetByID(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not get run: " + err.Error())
	}

	return result.OK(runToModel(r), "got run %s", id)
}

// HTTPDeleteRun returns a HandlerFunc that deletes a recorded run.
func (api API) HTTPDeleteRun() http.HandlerFunc {
	return api.Endpoint(api.epDeleteRun)
}

func (api API) epDeleteRun(req *http.Request) result.Result {
	id := requireIDParam(req)

	_, err := api.DB.Runs().Delete(req.Context(), id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return result.NotFound()
		}
		return result.InternalServerError("could not delete run: " + err.Error())
	}

	return result.NoContent("run %s deleted", id)
}

/*
Package main provides a toy example use of trellis' http stack.

It keeps a journal of hiked trails in memory:

	GET    /api/trails          list trails, filtered by ?difficulty=
	GET    /api/trails/:name    show one trail
	POST   /api/trails          log a trail; requires a bearer token when JWT_KEY is set
	DELETE /api/trails/:name    forget a trail
	GET    /                    redirect to /api/trails
*/
package main

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"sync"

	"github.com/xy-planning-network/trellis"
	"github.com/xy-planning-network/trellis/http/middleware"
	"github.com/xy-planning-network/trellis/http/pipeline"
	"github.com/xy-planning-network/trellis/http/req"
	"github.com/xy-planning-network/trellis/http/resp"
	"github.com/xy-planning-network/trellis/http/router"
	"github.com/xy-planning-network/trellis/ranger"
)

// A difficulty rates how hard a trail is.
type difficulty string

const (
	easy     difficulty = "easy"
	moderate difficulty = "moderate"
	hard     difficulty = "hard"
)

func (d difficulty) String() string { return string(d) }

func (d difficulty) Valid() error {
	switch d {
	case easy, moderate, hard:
		return nil
	default:
		return fmt.Errorf("%w: difficulty %q", trellis.ErrNotValid, string(d))
	}
}

type trail struct {
	Name       string     `json:"name" validate:"required"`
	Miles      float64    `json:"miles" validate:"gt=0"`
	Difficulty difficulty `json:"difficulty" validate:"required,enum"`
}

type trailFilter struct {
	Difficulty difficulty `schema:"difficulty" validate:"omitempty,enum"`
}

type trailName struct {
	Name string `path:"name" validate:"required"`
}

// A journal stores trails by name.
type journal struct {
	mu     sync.Mutex
	trails map[string]trail
}

type handler struct {
	*resp.Responder
	j *journal
}

func main() {
	rng, err := ranger.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	h := handler{Responder: rng.Responder, j: &journal{trails: make(map[string]trail)}}
	p := req.NewParser()

	var guard []pipeline.Decorator
	if key := os.Getenv("JWT_KEY"); key != "" {
		guard = append(guard, middleware.RequireJWT([]byte(key), nil))
	}

	api := router.New()
	api.Get("/trails", req.Bind(p, h.list))
	api.Get("/trails/:name", req.Bind(p, h.show))
	// guard follows the endpoint so it checks the token before the endpoint runs
	api.Post("/trails", append([]pipeline.Decorator{req.Bind(p, h.create)}, guard...)...)
	api.Delete("/trails/:name", append([]pipeline.Decorator{req.Bind(p, h.forget)}, guard...)...)

	rng.Get("/", pipeline.Endpoint(func(c *pipeline.Context) pipeline.Result {
		return h.Redirect(c, resp.Url("/api/trails"))
	}))

	if err := rng.Mount("/api", api); err != nil {
		rng.Logger().Fatal(err.Error(), nil)
	}

	if err := rng.Guide(); err != nil {
		rng.Logger().Fatal(err.Error(), nil)
	}
}

func (h handler) list(c *pipeline.Context, f *trailFilter) pipeline.Result {
	h.j.mu.Lock()
	defer h.j.mu.Unlock()

	trails := make([]trail, 0, len(h.j.trails))
	for _, t := range h.j.trails {
		if f.Difficulty == "" || f.Difficulty == t.Difficulty {
			trails = append(trails, t)
		}
	}

	sort.Slice(trails, func(i, k int) bool { return trails[i].Name < trails[k].Name })
	return h.Json(c, resp.Data(trails))
}

func (h handler) show(c *pipeline.Context, in *trailName) pipeline.Result {
	h.j.mu.Lock()
	defer h.j.mu.Unlock()

	t, ok := h.j.trails[in.Name]
	if !ok {
		return h.Err(c, fmt.Errorf("%w: trail %q", trellis.ErrNotExist, in.Name), resp.Code(http.StatusNotFound))
	}

	return h.Json(c, resp.Data(t))
}

func (h handler) create(c *pipeline.Context, in *trail) pipeline.Result {
	h.j.mu.Lock()
	defer h.j.mu.Unlock()

	if _, ok := h.j.trails[in.Name]; ok {
		return h.Err(c, fmt.Errorf("trail %q already logged", in.Name), resp.Code(http.StatusConflict))
	}

	h.j.trails[in.Name] = *in
	return h.Json(c, resp.Code(http.StatusCreated), resp.Data(in))
}

func (h handler) forget(c *pipeline.Context, in *trailName) pipeline.Result {
	h.j.mu.Lock()
	defer h.j.mu.Unlock()

	delete(h.j.trails, in.Name)
	return h.Empty(c)
}

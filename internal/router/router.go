// Package router holds the client's static route table and the navigation
// guard that gates entry into authenticated routes.
package router

import "sync"

// Route is one navigable surface of the client.
type Route struct {
	Name         string
	Path         string
	RequiresAuth bool
}

// Auth is what the guard needs from the session store.
type Auth interface {
	IsAuthenticated() bool
}

// PathLogin is where the guard sends unauthenticated transitions.
const PathLogin = "/login"

// routes is the full navigation surface. Everything except login and
// register requires a session.
var routes = []Route{
	{Name: "login", Path: "/login"},
	{Name: "register", Path: "/register"},
	{Name: "dashboard", Path: "/", RequiresAuth: true},
	{Name: "inventory", Path: "/inventory", RequiresAuth: true},
	{Name: "pos", Path: "/pos", RequiresAuth: true},
	{Name: "customers", Path: "/customers", RequiresAuth: true},
	{Name: "transactions", Path: "/transactions", RequiresAuth: true},
	{Name: "settings", Path: "/settings", RequiresAuth: true},
	{Name: "tracking", Path: "/tracking", RequiresAuth: true},
}

// Router resolves transitions through the guard and remembers the current
// route. It implements session.Navigator.
type Router struct {
	mu      sync.Mutex
	auth    Auth
	current Route
	byPath  map[string]Route
	byName  map[string]Route
}

func New(auth Auth) *Router {
	r := &Router{
		auth:   auth,
		byPath: make(map[string]Route, len(routes)),
		byName: make(map[string]Route, len(routes)),
	}
	for _, rt := range routes {
		r.byPath[rt.Path] = rt
		r.byName[rt.Name] = rt
	}
	r.current = r.byPath[PathLogin]
	return r
}

// Routes returns the route table in declaration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Lookup finds a route by name.
func (r *Router) Lookup(name string) (Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Resolve is the navigation guard: a pure predicate evaluated on every
// transition, never cached. Guarded targets resolve to the login route when
// no session exists; everything else passes through. Unknown paths also
// resolve to login.
func (r *Router) Resolve(path string) Route {
	rt, ok := r.byPath[path]
	if !ok {
		return r.byPath[PathLogin]
	}
	if rt.RequiresAuth && !r.auth.IsAuthenticated() {
		return r.byPath[PathLogin]
	}
	return rt
}

// Push resolves the target through the guard and makes the result current.
func (r *Router) Push(path string) {
	rt := r.Resolve(path)
	r.mu.Lock()
	r.current = rt
	r.mu.Unlock()
}

// Current returns the route the client is on.
func (r *Router) Current() Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

package repostats

import "maps"

// Fallbacks maps a repository owner to an alternate repository name under
// the same owner. It is consulted only after the nominal repository was not
// found.
type Fallbacks map[string]string

// DefaultFallbacks returns the built-in fallback table.
func DefaultFallbacks() Fallbacks {
	return Fallbacks{
		"vercel":                     "next.js",
		"react-native-community":     "react-native",
		"vuejs":                      "vue",
		"android":                    "kotlin",
		"sveltejs":                   "svelte",
		"flutter":                    "flutter",
		"django":                     "django",
		"expressjs":                  "express",
		"laravel":                    "laravel",
		"electron-react-boilerplate": "electron-react-boilerplate",
	}
}

// Lookup returns the fallback repository for owner.
func (f Fallbacks) Lookup(owner string) (string, bool) {
	repo, ok := f[owner]
	return repo, ok && repo != ""
}

// With returns a copy of f with overrides applied on top. An empty value
// in overrides removes the owner's fallback.
func (f Fallbacks) With(overrides map[string]string) Fallbacks {
	out := maps.Clone(f)
	if out == nil {
		out = Fallbacks{}
	}
	for owner, repo := range overrides {
		if repo == "" {
			delete(out, owner)
			continue
		}
		out[owner] = repo
	}
	return out
}

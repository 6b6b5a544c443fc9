package catalog

import "time"

const day = 24 * time.Hour

// seed pairs an entry with how long ago it was last updated.
type seed struct {
	entry Entry
	age   time.Duration
}

var seeds = []seed{
	{
		entry: Entry{
			ID:          1,
			Name:        "Next.js Starter Kit",
			Description: "A comprehensive starter template for Next.js projects with TypeScript, Tailwind CSS, and more.",
			Category:    "web",
			Tags:        []string{"next.js", "react", "typescript", "tailwind"},
			Stars:       2345,
			Forks:       432,
			Author:      "vercel",
			RepoURL:     "https://github.com/vercel/next.js",
			DemoURL:     "https://nextjs.org",
			Featured:    true,
		},
		age: 14 * day,
	},
	{
		entry: Entry{
			ID:          2,
			Name:        "React Native Starter",
			Description: "A React Native starter kit with navigation, state management, and styling solutions pre-configured.",
			Category:    "mobile",
			Tags:        []string{"react-native", "expo", "mobile", "typescript"},
			Stars:       1876,
			Forks:       321,
			Author:      "expo",
			RepoURL:     "https://github.com/expo/expo",
			DemoURL:     "https://expo.dev",
		},
		age: 30 * day,
	},
	{
		entry: Entry{
			ID:          3,
			Name:        "VS Code Extension Starter",
			Description: "A starter template for building VS Code extensions with TypeScript.",
			Category:    "tools",
			Tags:        []string{"vscode", "extension", "typescript"},
			Stars:       987,
			Forks:       156,
			Author:      "microsoft",
			RepoURL:     "https://github.com/microsoft/vscode-extension-samples",
		},
		age: 21 * day,
	},
	{
		entry: Entry{
			ID:          4,
			Name:        "Electron App Boilerplate",
			Description: "A minimalistic boilerplate for Electron applications with React and TypeScript.",
			Category:    "desktop",
			Tags:        []string{"electron", "react", "desktop", "typescript"},
			Stars:       1543,
			Forks:       287,
			Author:      "electron-react-boilerplate",
			RepoURL:     "https://github.com/electron-react-boilerplate/electron-react-boilerplate",
			Featured:    true,
		},
		age: 7 * day,
	},
	{
		entry: Entry{
			ID:          5,
			Name:        "Express API Starter",
			Description: "A starter template for building RESTful APIs with Express.js, TypeScript, and MongoDB.",
			Category:    "backend",
			Tags:        []string{"express", "node.js", "api", "mongodb"},
			Stars:       1234,
			Forks:       198,
			Author:      "expressjs",
			RepoURL:     "https://github.com/expressjs/express",
		},
		age: 60 * day,
	},
	{
		entry: Entry{
			ID:          6,
			Name:        "Flutter Starter Kit",
			Description: "A comprehensive starter kit for Flutter applications with state management, routing, and more.",
			Category:    "mobile",
			Tags:        []string{"flutter", "dart", "mobile", "cross-platform"},
			Stars:       2109,
			Forks:       345,
			Author:      "flutter",
			RepoURL:     "https://github.com/flutter/flutter",
			DemoURL:     "https://flutter.dev",
			Featured:    true,
		},
		age: 21 * day,
	},
	{
		entry: Entry{
			ID:          7,
			Name:        "Django Starter",
			Description: "A Django starter template with user authentication, admin panel, and PostgreSQL configuration.",
			Category:    "backend",
			Tags:        []string{"django", "python", "web", "postgresql"},
			Stars:       1432,
			Forks:       231,
			Author:      "django",
			RepoURL:     "https://github.com/django/django",
		},
		age: 30 * day,
	},
	{
		entry: Entry{
			ID:          8,
			Name:        "Vue.js Starter Kit",
			Description: "A Vue.js starter kit with Vuex, Vue Router, and Tailwind CSS pre-configured.",
			Category:    "web",
			Tags:        []string{"vue.js", "javascript", "tailwind", "frontend"},
			Stars:       1876,
			Forks:       298,
			Author:      "vuejs",
			RepoURL:     "https://github.com/vuejs/vue",
			DemoURL:     "https://vuejs.org",
		},
		age: 14 * day,
	},
	{
		entry: Entry{
			ID:          9,
			Name:        "Svelte Starter Kit",
			Description: "A Svelte starter kit with SvelteKit, TypeScript, and Tailwind CSS pre-configured.",
			Category:    "web",
			Tags:        []string{"svelte", "sveltekit", "typescript", "tailwind"},
			Stars:       1543,
			Forks:       231,
			Author:      "sveltejs",
			RepoURL:     "https://github.com/sveltejs/kit",
			DemoURL:     "https://kit.svelte.dev",
			Featured:    true,
		},
		age: 3 * day,
	},
	{
		entry: Entry{
			ID:          10,
			Name:        "Laravel Starter Kit",
			Description: "A Laravel starter kit with authentication, admin panel, and PostgreSQL configuration.",
			Category:    "backend",
			Tags:        []string{"laravel", "php", "web", "postgresql"},
			Stars:       1876,
			Forks:       345,
			Author:      "laravel",
			RepoURL:     "https://github.com/laravel/laravel",
			DemoURL:     "https://laravel.com",
		},
		age: 7 * day,
	},
	{
		entry: Entry{
			ID:          11,
			Name:        "React Dashboard Starter",
			Description: "A React dashboard starter kit with charts, tables, and authentication pre-configured.",
			Category:    "web",
			Tags:        []string{"react", "dashboard", "typescript", "charts"},
			Stars:       2345,
			Forks:       432,
			Author:      "reactjs",
			RepoURL:     "https://github.com/reactjs/reactjs.org",
			DemoURL:     "https://reactjs.org",
			Featured:    true,
		},
		age: 5 * day,
	},
	{
		entry: Entry{
			ID:          12,
			Name:        "Go API Starter",
			Description: "A Go API starter kit with authentication, database, and Docker configuration.",
			Category:    "backend",
			Tags:        []string{"go", "api", "docker", "postgresql"},
			Stars:       1234,
			Forks:       198,
			Author:      "golang",
			RepoURL:     "https://github.com/golang/go",
		},
		age: 14 * day,
	},
}

// Default returns the built-in seed catalog. Star and fork counts are
// sample values until refreshed; UpdatedAt is relative to the current time.
func Default() Catalog {
	return DefaultAt(time.Now())
}

// DefaultAt is like [Default] with UpdatedAt computed relative to now.
func DefaultAt(now time.Time) Catalog {
	out := make(Catalog, len(seeds))
	for i, s := range seeds {
		e := s.entry
		e.Tags = append([]string(nil), s.entry.Tags...)
		e.UpdatedAt = now.Add(-s.age).UTC()
		out[i] = e
	}
	return out
}

package main

// seed populates the store with a small fleet of acme repositories. Called
// before the server accepts requests.
func seed(s *store) {
	s.repos = []repoMeta{
		{
			Name: "billing-api", FullName: "acme/billing-api",
			Description: "Invoicing and payments service", Language: "Go",
			StargazersCount: 42, ForksCount: 7,
			HTMLURL: "http://localhost/acme/billing-api", DefaultBranch: "main",
			Topics: []string{"billing", "grpc"},
		},
		{
			Name: "user-service", FullName: "acme/user-service",
			Description: "Account and identity service", Language: "Go",
			StargazersCount: 17, ForksCount: 2,
			HTMLURL: "http://localhost/acme/user-service", DefaultBranch: "main",
		},
		{
			Name: "dashboard", FullName: "acme/dashboard",
			Description: "Internal ops dashboard", Language: "TypeScript",
			StargazersCount: 5, ForksCount: 1,
			HTMLURL: "http://localhost/acme/dashboard", DefaultBranch: "main",
		},
	}

	s.files["acme/billing-api"] = map[string]string{
		"README.md":                 "# billing-api\n\nInvoicing and payments service.\n",
		"go.mod":                    "module github.com/acme/billing-api\n\ngo 1.25\n",
		"main.go":                   "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"billing-api\")\n}\n",
		"internal/invoice.go":       "package internal\n\n// Invoice totals are stored in cents.\ntype Invoice struct {\n\tID    string\n\tCents int64\n}\n",
		".github/workflows/ci.yaml": "name: ci\non: [push]\n",
	}
	s.files["acme/user-service"] = map[string]string{
		"README.md": "# user-service\n\nAccount and identity service.\n",
		"main.go":   "package main\n\nfunc main() {}\n",
	}
	s.files["acme/dashboard"] = map[string]string{
		"README.md":    "# dashboard\n",
		"src/index.ts": "export const hello = () => console.log(\"dashboard\");\n",
	}

	s.commits["acme/billing-api"] = []commitJSON{
		seedCommit("7f3a9c1d2e", "Add invoice rounding fix", "Dana Brooks", "dana@acme.test", "2026-05-12T09:30:00Z"),
		seedCommit("1b4e8d7a90", "Introduce payment retries", "Sam Ortiz", "sam@acme.test", "2026-05-02T16:05:00Z"),
	}
	s.commits["acme/user-service"] = []commitJSON{
		seedCommit("e9c2f51b33", "Initial service scaffold", "Dana Brooks", "dana@acme.test", "2026-04-20T11:00:00Z"),
	}
}

func seedCommit(sha, message, name, email, date string) commitJSON {
	var c commitJSON
	c.SHA = sha
	c.HTMLURL = "http://localhost/commit/" + sha
	c.Commit.Message = message
	c.Commit.Author.Name = name
	c.Commit.Author.Email = email
	c.Commit.Author.Date = date
	c.Author.Login = "acme-bot"
	return c
}

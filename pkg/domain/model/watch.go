package model

// WatchConfig declares what the agent keeps an eye on. It is loaded from a
// TOML file; DefaultWatchConfig supplies the built-in lists when no file is
// configured.
type WatchConfig struct {
	// Queries are search prompts run against the paper sources
	Queries []string `toml:"queries"`

	// Frameworks is the release watchlist
	Frameworks []Framework `toml:"frameworks"`

	// Files are repository-relative paths whose links are verified and
	// which seed the content suggestion prompt
	Files []string `toml:"files"`

	// Chapters are markdown files stamped by the bump command
	Chapters []string `toml:"chapters"`

	// Latex is the LaTeX source stamped by the bump command
	Latex string `toml:"latex"`

	Issue IssueConfig `toml:"issue"`
}

// IssueConfig controls the summary issue filed after an update run
type IssueConfig struct {
	TitlePrefix string   `toml:"title_prefix"`
	Labels      []string `toml:"labels"`
}

// DefaultWatchConfig mirrors the built-in query and framework lists of the
// original weekly update job.
func DefaultWatchConfig() *WatchConfig {
	return &WatchConfig{
		Queries: []string{
			"Survey of Large Language Model based Autonomous Agents",
			"comprehensive review agentic AI systems LLM agents",
			"Tree of Thoughts Graph of Thoughts reasoning LLM",
			"long-term memory systems LLM agents",
			"ReAct ReWOO tool use planning agents",
			"multi-agent coordination LLM",
			"Self-RAG corrective RAG active retrieval",
			"agent evaluation benchmark WebArena AgentBench",
			"multimodal agents vision-language reasoning",
			"LLM agent planning",
		},
		Frameworks: []Framework{
			{Name: "LangChain", PyPI: "langchain", GitHub: "langchain-ai/langchain"},
			{Name: "LangGraph", PyPI: "langgraph", GitHub: "langchain-ai/langgraph"},
			{Name: "Pydantic AI", PyPI: "pydantic-ai", GitHub: "pydantic/pydantic-ai"},
			{Name: "DSPy", PyPI: "dspy-ai", GitHub: "stanfordnlp/dspy"},
			{Name: "AutoGPT", GitHub: "Significant-Gravitas/AutoGPT"},
			{Name: "CrewAI", PyPI: "crewai", GitHub: "joaomdmoura/crewAI"},
		},
		Files: []string{
			"README.md",
			"arxiv-paper/paper.tex",
		},
		Chapters: []string{
			"docs/paper/index.md",
			"docs/paper/01-introduction.md",
			"docs/paper/02-related-work.md",
			"docs/paper/03-foundations.md",
			"docs/paper/04-implementation.md",
			"docs/paper/05-knowledge-integration.md",
			"docs/paper/06-organizational.md",
			"docs/paper/07-conclusion.md",
			"docs/paper/08-references.md",
		},
		Latex: "arxiv-paper/paper.tex",
		Issue: IssueConfig{
			TitlePrefix: "AI Update Report",
			Labels:      []string{"ai-update", "paper-review", "automated"},
		},
	}
}

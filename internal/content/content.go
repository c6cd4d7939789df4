// Package content is the authored copy of the portfolio page.
package content

// Section is one scroll stop on the page. ID doubles as its anchor.
type Section struct {
	ID      string
	Title   string
	Lead    string
	Body    string
	Skills  []Skill
	Entries []Entry
	Links   []Link
}

type Skill struct {
	Name  string
	Level string
}

// Entry is a job, degree or project.
type Entry struct {
	Title    string
	Subtitle string
	Period   string
	Logo     string
	Bullets  []string
	Tech     []string
}

type Link struct {
	Label string
	Href  string
}

// NavItem points the navigation bar at a section anchor.
type NavItem struct {
	Label  string
	Anchor string
}

var AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
different language, experimenting with tools, or solving tricky problems.
When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
or chasing down a new challenge outside the screen.`

var sections = []Section{
	{
		ID:    "home",
		Title: "Zach Kordas-Potter",
		Lead:  "Software developer",
		Body:  "I build terminal tools, web apps and the occasional robot that waves back.",
	},
	{
		ID:    "about",
		Title: "About Me",
		Body:  AboutMe,
	},
	{
		ID:    "skills",
		Title: "Skills",
		Skills: []Skill{
			{"Go", "Advanced"},
			{"Gin", "Advanced"},
			{"HTMX", "Advanced"},
			{"SQLite", "Intermediate"},
			{"Python", "Intermediate"},
			{"Tailwind CSS", "Intermediate"},
			{"Alpine.js", "Intermediate"},
			{"Git", "Advanced"},
		},
	},
	{
		ID:    "experience",
		Title: "Experience",
		Entries: []Entry{
			{
				Title:    "Presentation Expert",
				Subtitle: "Target",
				Period:   "Aug 2023 - Present",
				Logo:     "images/TargetLogo.jpg",
				Bullets: []string{
					"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
					"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
				},
			},
			{
				Title:    "Manager",
				Subtitle: "Jasons Catered Events",
				Period:   "Aug 2016 - Present",
				Logo:     "images/jasonsCateringLogo.png",
				Bullets: []string{
					"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
					"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems",
				},
			},
			{
				Title:    "Bachelor of Computer Science",
				Subtitle: "Western Governors University",
				Period:   "Sept 2019 - May 2023",
				Logo:     "images/WGU-logo.png",
				Bullets: []string{
					"Graduated Magna Cum Laude with 3.8 GPA",
					"Senior project: Machine Learning recommendation system",
				},
			},
		},
	},
	{
		ID:    "projects",
		Title: "Projects",
		Entries: []Entry{
			{
				Title: "Terminal Mail",
				Bullets: []string{`A terminal-based email client built in Go with fuzzyfinder capabilities
using the Charmbracelet TUI framework and go-imap.`},
				Tech: []string{"Go", "Bubble Tea", "go-imap"},
			},
			{
				Title: "Terminal Music",
				Bullets: []string{`A terminal-based music streaming application built in Go with an elegant TUI
interface, leveraging yt-dlp and mpv for YouTube Music playback directly from the command line.`},
				Tech: []string{"Go", "yt-dlp", "mpv"},
			},
			{
				Title: "Game Recommender",
				Bullets: []string{`A machine learning-powered web application that uses TF-IDF vectorization and cosine
similarity to recommend games based on content analysis.`},
				Tech: []string{"Python", "scikit-learn"},
			},
			{
				Title: "This Portfolio",
				Bullets: []string{`A portfolio website built with Go, Gin and HTMX, with a pull-chain theme switch
and a mascot that follows you down the page.`},
				Tech: []string{"Go", "Gin", "HTMX", "SQLite"},
			},
		},
	},
	{
		ID:    "contact",
		Title: "Get in Touch",
		Body:  "I'm currently looking for new opportunities. Whether you have a question or just want to say hi, feel free to reach out!",
		Links: []Link{
			{"GitHub", "https://github.com/Zachkp"},
			{"Email", "mailto:hello@example.com"},
		},
	},
}

var nav = []NavItem{
	{"Home", "home"},
	{"About", "about"},
	{"Projects", "projects"},
	{"Experience", "experience"},
	{"Contact", "contact"},
}

// Sections returns the page sections in scroll order.
func Sections() []Section {
	return sections
}

// Nav returns the navigation bar items.
func Nav() []NavItem {
	return nav
}

// Find returns the section with the given anchor.
func Find(id string) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

package main

var (
	HeroGreeting = `Hi, I'm Syed Arqum`

	HeroTitle = `Full-Stack Developer`

	HeroTagline = `Specializing in Python/Django & Angular/React to build scalable, 
	high-performance web applications.`

	AboutMe = `I have over 3 years of experience designing scalable backend systems and full-stack 
	applications. My work involves building complex booking flows, optimizing slow APIs, implementing 
	map-based real-time features, improving UI/UX, and developing clean, modular frontend components.`

	Philosophy = `I believe that great software is more than just code, it's about solving real problems 
	for real people. Every line I write is driven by a commitment to performance, scalability, and user experience.`

	ImpactQuote = `I don't just write code, I craft solutions that make a measurable difference. 
	Every optimization, every feature, every line of code is driven by a commitment to excellence and impact.`

	ContactIntro = `Have a project in mind or want to discuss a potential collaboration?`

	ContactSuccess = `Thank you for your message! I'll get back to you soon.`
)

// sectionHeadings are the title and subtitle of each story section.
var sectionHeadings = map[string][2]string{
	"journey":  {"The Beginning", "Every great developer has an origin story. Here's mine."},
	"skills":   {"The Arsenal", "Every hero needs the right tools. Here's what I've mastered on my journey."},
	"projects": {"The Challenges", "Every great developer faces epic quests. Here are mine, and how I conquered them."},
	"impact":   {"The Impact", "Numbers tell a story. Here's the difference I've made."},
	"contact":  {"Get In Touch", ContactIntro},
}

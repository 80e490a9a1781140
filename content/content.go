// Package content is the page's static copy: projects, skills, timeline
// milestones and impact metrics. Everything here is read-only; accessors
// hand out copies.
package content

import "slices"

type Project struct {
	Title            string
	ShortDescription string
	FullDescription  string
	Tags             []string
	Image            string
	Challenge        string
	Journey          string
	Victory          string
	Features         []string
	Technologies     []string
	Challenges       []string
}

type SkillCategory struct {
	Category string
	Icon     string
	Items    []string
}

type Milestone struct {
	Year        string
	Title       string
	Icon        string
	Description string
	Achievement string
}

type Metric struct {
	Icon        string
	Value       int
	Suffix      string
	Label       string
	Description string
}

type Achievement struct {
	Title       string
	Description string
	Impact      string
}

type Social struct {
	Name string
	URL  string
}

var projects = []Project{
	{
		Title:            "The Quest for Seamless Bookings",
		ShortDescription: "A complex multi-step journey where users needed to book cars effortlessly. The challenge? Slow APIs, complex location selection, and security concerns.",
		FullDescription:  "The Challenge: Users were abandoning bookings due to slow performance and confusing workflows. The Journey: I architected a complete solution with optimized database queries, real-time Google Maps integration, and secure OTP verification. The Victory: A lightning-fast booking system that handles thousands of users daily.",
		Tags:             []string{"Angular", "Django", "Google Maps", "Redis"},
		Image:            "car-rental.png",
		Challenge:        "Users faced slow booking processes, confusing multi-step flows, and security vulnerabilities in the car rental system.",
		Journey:          "Redesigned the entire booking architecture from the ground up. Implemented database indexing and query optimization, reducing API response time by 60%. Built an intuitive multi-step wizard with real-time Google Maps integration featuring custom polygons for service areas. Added secure OTP verification using Firebase for both email and SMS.",
		Victory:          "Delivered a blazing-fast booking system with 60% faster APIs, seamless map-based location selection, and bank-grade security. User completion rates increased significantly.",
		Features: []string{
			"Multi-step booking wizard with progress tracking",
			"Real-time Google Maps integration with custom markers and polygons",
			"Email and SMS OTP verification using Firebase",
			"Database query optimization with indexing and stored procedures",
			"Reusable Angular components for consistent UI",
			"Redis caching for improved performance",
		},
		Technologies: []string{"Angular", "TypeScript", "Django", "Django REST Framework", "PostgreSQL", "Redis", "Google Maps API", "Firebase"},
		Challenges: []string{
			"Optimized slow API endpoints by implementing database indexing and query refactoring, reducing response time by 60%",
			"Designed complex polygon-based location selection on Google Maps with real-time updates",
			"Implemented secure OTP flow with rate limiting and expiration handling",
		},
	},
	{
		Title:            "The Security Fortress",
		ShortDescription: "Building an impenetrable authentication system that's both secure and user-friendly. The mission? Unified OTP verification across email and SMS.",
		FullDescription:  "The Challenge: Users needed a secure yet seamless way to verify their identity across multiple channels. The Journey: I built a robust dual-channel OTP system with Firebase integration, custom email services, and dynamic document validation. The Victory: A security system that's both bulletproof and delightful to use.",
		Tags:             []string{"Python", "Firebase", "Security", "API"},
		Image:            "otp-verification.png",
		Challenge:        "The platform needed a secure, reliable authentication system supporting both email and SMS verification with document upload capabilities.",
		Journey:          "Architected a unified verification flow leveraging Firebase for SMS delivery and a custom email service for email OTPs. Implemented rate limiting, expiration handling, and retry logic to prevent abuse. Built dynamic document validation with file type and size restrictions.",
		Victory:          "Shipped a production-ready authentication system handling thousands of verifications daily with zero security incidents.",
		Features: []string{
			"Dual-channel OTP delivery (Email + SMS)",
			"Firebase integration for secure SMS delivery",
			"Custom email service with templating",
			"Dynamic document upload with validation",
			"Reusable OTP input components",
			"Rate limiting and security measures",
		},
		Technologies: []string{"Python", "Django", "Firebase Admin SDK", "Celery", "Redis", "React", "TypeScript"},
		Challenges: []string{
			"Implemented unified verification flow supporting both email and SMS with fallback mechanisms",
			"Designed secure OTP generation and validation with expiration and retry logic",
			"Built dynamic document validation system with file type and size restrictions",
		},
	},
	{
		Title:            "The Automation Engine",
		ShortDescription: "Scaling marketing campaigns to reach 100K+ users without breaking a sweat. The challenge? Automated promo codes, user segmentation, and scheduled tasks.",
		FullDescription:  "The Challenge: Marketing teams needed to run massive promotional campaigns targeting specific user segments at scale. The Journey: I built an enterprise-grade automation platform with Celery for distributed task processing, flexible user segmentation, and automated promo code generation. The Victory: A system that processes 100K+ users per campaign reliably and efficiently.",
		Tags:             []string{"Django", "Celery", "Automation", "Batch Processing"},
		Image:            "automation.png",
		Challenge:        "Marketing teams struggled to run large-scale promotional campaigns efficiently. Manual processes were slow, error-prone, and couldn't handle the scale needed.",
		Journey:          "Designed a scalable automation pipeline using Django and Celery with RabbitMQ for reliable distributed task execution. Built a flexible user segmentation engine with complex filtering logic. Implemented automated promo code generation with customizable patterns.",
		Victory:          "Delivered an automation powerhouse processing 100K+ users per campaign with real-time progress tracking. Marketing teams can now launch campaigns in minutes instead of days.",
		Features: []string{
			"Automated promo code generation with customizable patterns",
			"User segmentation based on multiple criteria",
			"Scheduled task execution with cron-like syntax",
			"Batch processing with progress tracking",
			"Real-time monitoring dashboard",
			"Email notification system for campaign results",
		},
		Technologies: []string{"Django", "Celery", "RabbitMQ", "PostgreSQL", "Redis", "Django Management Commands"},
		Challenges: []string{
			"Designed scalable batch-processing pipeline handling 100K+ users per campaign",
			"Implemented distributed task queue with Celery and RabbitMQ for reliable execution",
			"Built flexible user segmentation engine with complex filtering logic",
		},
	},
}

var skills = []SkillCategory{
	{Category: "Backend & APIs", Icon: "server", Items: []string{"Python", "Django", "FastAPI", "REST APIs", "WebSockets", "Microservices"}},
	{Category: "Frontend", Icon: "react", Items: []string{"React", "Angular", "TypeScript", "JavaScript", "TailwindCSS", "Framer Motion"}},
	{Category: "Databases", Icon: "database", Items: []string{"PostgreSQL", "MySQL", "Redis", "Celery", "RabbitMQ"}},
	{Category: "DevOps & Cloud", Icon: "docker", Items: []string{"Docker", "Nginx", "AWS", "Azure", "GCP", "CI/CD"}},
}

var milestones = []Milestone{
	{
		Year:        "2021",
		Title:       "The Discovery",
		Icon:        "lightbulb",
		Description: "Started my journey into web development, fascinated by how code could solve real-world problems. Dove deep into Python and Django, building my first applications.",
		Achievement: "Built first full-stack application",
	},
	{
		Year:        "2022",
		Title:       "The First Challenge",
		Icon:        "code",
		Description: "Joined a team working on complex SaaS platforms. Faced my first major challenge: optimizing slow APIs and building scalable booking systems.",
		Achievement: "Reduced API response time by 60%",
	},
	{
		Year:        "2023",
		Title:       "The Growth",
		Icon:        "rocket",
		Description: "Expanded my expertise to frontend technologies, mastering Angular and React. Started building complete user experiences, from database to UI.",
		Achievement: "Delivered 10+ production features",
	},
	{
		Year:        "2024",
		Title:       "The Mastery",
		Icon:        "trophy",
		Description: "Now a full-stack developer with 3+ years of experience, I've built scalable systems handling 100K+ users, optimized critical infrastructure, and mentored junior developers.",
		Achievement: "Full-stack expertise achieved",
	},
}

var metrics = []Metric{
	{Icon: "bolt", Value: 60, Suffix: "%", Label: "Performance Improvement", Description: "Reduced API response times through optimization and caching"},
	{Icon: "users", Value: 100, Suffix: "K+", Label: "Users Processed", Description: "Scalable batch processing pipelines handling massive user bases"},
	{Icon: "code", Value: 10, Suffix: "+", Label: "Projects Delivered", Description: "Production-ready features shipped across multiple platforms"},
	{Icon: "chart", Value: 3, Suffix: "+", Label: "Years Experience", Description: "Building scalable full-stack applications"},
}

var achievements = []Achievement{
	{
		Title:       "Optimization Master",
		Description: "Transformed slow, inefficient APIs into lightning-fast endpoints through strategic database indexing, query optimization, and Redis caching.",
		Impact:      "60% reduction in response time",
	},
	{
		Title:       "Scale Architect",
		Description: "Designed and implemented batch processing systems capable of handling 100K+ users per campaign with distributed task queues.",
		Impact:      "100K+ users processed",
	},
	{
		Title:       "Feature Velocity",
		Description: "Consistently delivered complex features from concept to production, including booking flows, OTP systems, and real-time map integrations.",
		Impact:      "10+ production features",
	},
}

var socials = []Social{
	{Name: "GitHub", URL: "https://github.com/Syed-Arqum-Sultan"},
	{Name: "LinkedIn", URL: "https://www.linkedin.com/in/syed-arqum-sultan"},
	{Name: "Email", URL: "mailto:syedarqum1999@gmail.com"},
}

func cloneProject(p Project) Project {
	p.Tags = slices.Clone(p.Tags)
	p.Features = slices.Clone(p.Features)
	p.Technologies = slices.Clone(p.Technologies)
	p.Challenges = slices.Clone(p.Challenges)
	return p
}

// Projects returns the showcase projects in display order. The index is
// the project's address in the detail overlay.
func Projects() []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = cloneProject(p)
	}
	return out
}

// ProjectAt returns project i, or false when i is out of range.
func ProjectAt(i int) (Project, bool) {
	if i < 0 || i >= len(projects) {
		return Project{}, false
	}
	return cloneProject(projects[i]), true
}

func Skills() []SkillCategory {
	out := make([]SkillCategory, len(skills))
	for i, s := range skills {
		s.Items = slices.Clone(s.Items)
		out[i] = s
	}
	return out
}

func Milestones() []Milestone     { return slices.Clone(milestones) }
func Metrics() []Metric           { return slices.Clone(metrics) }
func Achievements() []Achievement { return slices.Clone(achievements) }
func Socials() []Social           { return slices.Clone(socials) }

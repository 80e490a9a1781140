package page

import (
	"fmt"
	"time"

	"github.com/Zachkp/storyfolio/content"
	"github.com/Zachkp/storyfolio/counter"
	"github.com/Zachkp/storyfolio/observe"
	"github.com/Zachkp/storyfolio/scroll"
	"github.com/Zachkp/storyfolio/visibility"
)

// Section owns every animation registered for one page section. Closing it
// cancels their frames and observations.
type Section struct {
	Name  string
	scope observe.Scope
}

func (s *Section) Close()       { s.scope.Close() }
func (s *Section) Closed() bool { return s.scope.Closed() }

// Element ids shared with the templates.
func MilestoneID(i int) string   { return fmt.Sprintf("journey-milestone-%d", i) }
func SkillCardID(i int) string   { return fmt.Sprintf("skills-card-%d", i) }
func ProjectCardID(i int) string { return fmt.Sprintf("projects-card-%d", i) }
func MetricID(i int) string      { return fmt.Sprintf("impact-metric-%d", i) }
func CounterID(i int) string     { return fmt.Sprintf("impact-counter-%d", i) }
func AchievementID(i int) string { return fmt.Sprintf("impact-achievement-%d", i) }

var HeroElements = []string{"hero-greeting", "hero-title", "hero-tagline", "hero-actions"}

const (
	JourneyLineID  = "journey-line"
	JourneyOutroID = "journey-outro"
	ImpactHeadID   = "impact-heading"
	ImpactQuoteID  = "impact-quote"
)

func fromTo(p scroll.Property, from, to float64, ease scroll.Easing) scroll.AnimationSpec {
	return scroll.AnimationSpec{Property: p, From: from, To: to, Ease: ease}
}

func trigger(id, start, end string) scroll.Trigger {
	return scroll.Trigger{Element: id, Start: scroll.MustAnchor(start), End: scroll.MustAnchor(end)}
}

// scrub ties specs to the element's scroll range.
func (p *Page) scrub(sec *Section, id, start, end string, specs []scroll.AnimationSpec) {
	sec.scope.Add(scroll.ScrubAnimation(p.tracker, trigger(id, start, end), specs, p.styleSink(id)))
}

// intro plays specs once when the element first shows up below the fold.
func (p *Page) intro(sec *Section, id string, cfg scroll.PlayOnceConfig) {
	t := trigger(id, "top bottom", "top bottom")
	t.Mode = scroll.ModePlayOnce
	anim := scroll.NewPlayOnce(p.frames, cfg, p.styleSink(id))
	sec.scope.Add(scroll.PlayOnceAnimation(p.tracker, t, anim))
}

// reveal plays specs once the first time the element enters the viewport.
func (p *Page) reveal(sec *Section, id string, cfg scroll.PlayOnceConfig) {
	anim := scroll.NewPlayOnce(p.frames, cfg, p.styleSink(id))
	w := p.observer.Observe(id, visibility.Options{Once: true}, func(entered bool) {
		if entered {
			anim.Start()
		}
	})
	sec.scope.Add(func() {
		w.Dispose()
		anim.Stop()
	})
}

func (p *Page) mountSections() {
	p.sections = []*Section{
		p.heroSection(),
		p.journeySection(),
		p.skillsSection(),
		p.projectsSection(),
		p.impactSection(),
	}
}

// entrance eases the timed intros and in-view reveals: fast start, soft
// landing.
var entrance = scroll.MustEase("power1.out")

func (p *Page) heroSection() *Section {
	sec := &Section{Name: "hero"}
	for i, id := range HeroElements {
		p.intro(sec, id, scroll.PlayOnceConfig{
			Specs: []scroll.AnimationSpec{
				fromTo(scroll.Opacity, 0, 1, entrance),
				fromTo(scroll.TranslateY, 20, 0, entrance),
			},
			Duration: 500 * time.Millisecond,
			Delay:    time.Duration(i) * 100 * time.Millisecond,
		})
	}
	return sec
}

func (p *Page) journeySection() *Section {
	sec := &Section{Name: "journey"}
	p.scrub(sec, JourneyLineID, "top center", "bottom center", []scroll.AnimationSpec{
		fromTo(scroll.ScaleY, 0, 1, scroll.Linear),
	})

	power3 := scroll.MustEase("power3.out")
	for i := range content.Milestones() {
		x := -100.0
		if i%2 == 1 {
			x = 100
		}
		p.scrub(sec, MilestoneID(i), "top 80%", "top 50%", []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, power3),
			fromTo(scroll.TranslateX, x, 0, power3),
			fromTo(scroll.Scale, 0.8, 1, power3),
		})
	}

	p.reveal(sec, JourneyOutroID, scroll.PlayOnceConfig{
		Specs: []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, entrance),
			fromTo(scroll.TranslateY, 30, 0, entrance),
		},
		Duration: 600 * time.Millisecond,
	})
	return sec
}

func (p *Page) skillsSection() *Section {
	sec := &Section{Name: "skills"}
	back := scroll.MustEase("back.out(1.7)")
	for i := range content.Skills() {
		p.scrub(sec, SkillCardID(i), "top 85%", "top 65%", []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, back),
			fromTo(scroll.Scale, 0.5, 1, back),
			fromTo(scroll.RotateY, 90, 0, back),
		})
	}
	return sec
}

func (p *Page) projectsSection() *Section {
	sec := &Section{Name: "projects"}
	power3 := scroll.MustEase("power3.out")
	for i := range content.Projects() {
		p.scrub(sec, ProjectCardID(i), "top 85%", "top 60%", []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, power3),
			fromTo(scroll.TranslateY, 100, 0, power3),
			fromTo(scroll.RotateX, -15, 0, power3),
		})
	}
	return sec
}

func (p *Page) impactSection() *Section {
	sec := &Section{Name: "impact"}
	power3 := scroll.MustEase("power3.out")
	power2 := scroll.MustEase("power2.out")

	for i, m := range content.Metrics() {
		p.scrub(sec, MetricID(i), "top 85%", "top 60%", []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, power3),
			fromTo(scroll.TranslateY, 80, 0, power3),
			fromTo(scroll.RotateY, -30, 0, power3),
			fromTo(scroll.Scale, 0.8, 1, power3),
		})

		c := counter.New(m.Value, p.cfg.CounterDuration, p.frames, p.counterSink(CounterID(i)))
		c.Bind(p.observer, CounterID(i))
		sec.scope.Add(c.Close)
	}

	for i := range content.Achievements() {
		p.scrub(sec, AchievementID(i), "top 80%", "top 60%", []scroll.AnimationSpec{
			fromTo(scroll.Opacity, 0, 1, power2),
			fromTo(scroll.TranslateY, 50, 0, power2),
			fromTo(scroll.Scale, 0.9, 1, power2),
		})
	}

	for _, r := range []struct {
		id string
		y  float64
	}{{ImpactHeadID, 20}, {ImpactQuoteID, 30}} {
		p.reveal(sec, r.id, scroll.PlayOnceConfig{
			Specs: []scroll.AnimationSpec{
				fromTo(scroll.Opacity, 0, 1, entrance),
				fromTo(scroll.TranslateY, r.y, 0, entrance),
			},
			Duration: 600 * time.Millisecond,
		})
	}
	return sec
}

//go:build js && wasm

// Command effects runs the client-side page effects: code rain, cursor glow,
// scroll reveals, reading progress, navigation state and the enhanced
// contact form. Build with GOOS=js GOARCH=wasm.
package main

import (
	"strconv"
	"syscall/js"
	"time"

	"songdeming.dev/portfolio-web/internal/browser"
	"songdeming.dev/portfolio-web/internal/glow"
	"songdeming.dev/portfolio-web/internal/i18n"
	"songdeming.dev/portfolio-web/internal/motion"
	"songdeming.dev/portfolio-web/internal/nav"
	"songdeming.dev/portfolio-web/internal/progress"
	"songdeming.dev/portfolio-web/internal/rain"
	"songdeming.dev/portfolio-web/internal/reveal"
)

const (
	heroLoadDelay  = 800 * time.Millisecond
	typingInterval = 25 * time.Millisecond
	glitchEvery    = 4 * time.Second
	glitchFor      = 200 * time.Millisecond
	toastFor       = 5 * time.Second
)

var networkError = i18n.P("Network error. Please try again.", "网络错误，请重试。")

type effects struct {
	monitor *motion.Monitor
	lang    *i18n.Context
	home    bool

	rain   *rain.Renderer
	canvas *browser.Canvas

	releaseContact func()
	cleanup        []func()
	done           chan struct{}
}

func main() {
	root := browser.Root()
	l, _ := i18n.Parse(browser.Attr(root, "lang"))
	fx := &effects{
		monitor: motion.NewMonitor(browser.Environment{}),
		lang:    i18n.NewContext(l),
		home:    browser.Attr(root, "data-page") == "home",
		done:    make(chan struct{}),
	}
	browser.SetClass(root, "fx", true)
	fx.applyMotion(fx.monitor.Snapshot())
	fx.track(fx.monitor.Subscribe(fx.applyMotion))

	fx.mountRain()
	fx.mountGlow()
	fx.mountReveals(browser.Document())
	fx.mountScroll()
	fx.mountToggles()
	fx.mountHero()
	fx.enhanceContact()

	browser.On(browser.Window(), "pagehide", func(ev js.Value) {
		if ev.Truthy() && ev.Get("persisted").Bool() {
			return
		}
		fx.teardown()
	})
	<-fx.done
}

// track keeps a release func for teardown.
func (fx *effects) track(release func()) {
	fx.cleanup = append(fx.cleanup, release)
}

// teardown releases every listener, observer, timer and frame.
func (fx *effects) teardown() {
	select {
	case <-fx.done:
		return
	default:
	}
	close(fx.done)
	if fx.rain != nil {
		fx.rain.Stop()
	}
	if fx.releaseContact != nil {
		fx.releaseContact()
		fx.releaseContact = nil
	}
	for i := len(fx.cleanup) - 1; i >= 0; i-- {
		fx.cleanup[i]()
	}
	fx.cleanup = nil
	fx.monitor.Close()
}

func (fx *effects) reduced() bool {
	return fx.monitor.Snapshot().ShouldReduceAnimations
}

func (fx *effects) applyMotion(s motion.Snapshot) {
	browser.SetClass(browser.Root(), "reduce-motion", s.ShouldReduceAnimations)
	if fx.rain != nil {
		fx.rain.SetReducedMotion(s.PrefersReducedMotion)
	}
}

func (fx *effects) mountRain() {
	fx.canvas = browser.NewCanvas(browser.ByID("code-rain"))
	if fx.canvas == nil {
		return
	}
	fx.rain = rain.NewRenderer(fx.canvas, browser.NewFrames(), rain.OptionsFor(fx.monitor.Snapshot()))
	fx.rain.Start()
	fx.track(browser.On(browser.Window(), "resize", func(js.Value) {
		fx.rain.Resize(fx.canvas.Fit())
	}))
}

func (fx *effects) mountGlow() {
	el := browser.ByID("cursor-glow")
	snap := fx.monitor.Snapshot()
	overlay := glow.New(snap.IsTouchDevice, snap.PrefersReducedMotion)
	if !el.Truthy() || !overlay.Enabled() {
		return
	}
	doc := browser.Document()
	layers := overlay.Layers()
	divs := make([]js.Value, len(layers))
	for i := range layers {
		divs[i] = doc.Call("createElement", "div")
		el.Call("appendChild", divs[i])
	}
	paint := func() {
		for i, l := range layers {
			divs[i].Get("style").Set("cssText", overlay.Style(l))
		}
		el.Get("style").Set("opacity", overlay.Opacity())
	}
	paint()
	browser.SetHidden(el, false)
	fx.track(browser.On(doc, "mousemove", func(ev js.Value) {
		overlay.Move(ev.Get("clientX").Float(), ev.Get("clientY").Float())
		paint()
	}))
	fx.track(browser.On(doc.Get("documentElement"), "mouseleave", func(js.Value) {
		overlay.Leave()
		paint()
	}))
	fx.track(browser.On(doc.Get("documentElement"), "mouseenter", func(js.Value) {
		overlay.Enter()
		paint()
	}))
}

// mountReveals wires every [data-reveal] element and [data-stagger] group
// under root.
func (fx *effects) mountReveals(root js.Value) {
	for _, el := range browser.QueryAll(root, "[data-reveal]") {
		el := el
		obs := reveal.NewObserver(reveal.OptionsFor(browser.Attr(el, "data-reveal-threshold")))
		obs.OnChange(func(v bool) { browser.SetClass(el, "is-visible", v) })
		fx.track(observeOnce(el, obs))
	}
	for _, group := range browser.QueryAll(root, "[data-stagger]") {
		items := browser.QueryAll(group, "[data-reveal-item]")
		ms, _ := strconv.Atoi(browser.Attr(group, "data-stagger"))
		delay := motion.AnimationDuration(fx.reduced(), time.Duration(ms)*time.Millisecond)
		st := reveal.NewStagger(len(items), delay, reveal.RealScheduler)
		st.OnChange(func(i int, v bool) { browser.SetClass(items[i], "is-visible", v) })
		fx.track(st.Close)
		parent := reveal.NewObserver(reveal.OptionsFor(browser.Attr(group, "data-reveal-threshold")))
		parent.OnChange(st.SetParent)
		fx.track(observeOnce(group, parent))
	}
}

// observeOnce feeds intersections into obs and disconnects once obs is done.
func observeOnce(el js.Value, obs *reveal.Observer) (stop func()) {
	var release func()
	finished := false
	release = browser.Observe(el, obs.Options(), func(in bool) {
		obs.Observe(in)
		if obs.Done() && release != nil && !finished {
			finished = true
			release()
		}
	})
	if obs.Done() {
		finished = true
		release()
	}
	return func() {
		if !finished {
			finished = true
			release()
		}
	}
}

func (fx *effects) mountScroll() {
	bar := browser.Document().Call("querySelector", ".scroll-progress-bar")
	meter := browser.ByID("scroll-progress")
	top := browser.ByID("back-to-top")
	header := browser.ByID("site-nav")
	links := browser.QueryAll(browser.Document(), "a[data-nav-section]")

	update := func() {
		y := browser.ScrollY()
		vh := browser.ViewportHeight()
		pct := progress.Percent(y, browser.DocumentHeight(), vh)
		if bar.Truthy() {
			bar.Get("style").Set("width", progress.Width(pct))
			meter.Call("setAttribute", "aria-valuenow", strconv.Itoa(int(pct)))
		}
		browser.SetHidden(top, !progress.BackToTopVisible(y, vh))
		if header.Truthy() {
			header.Call("setAttribute", "data-scrolled", strconv.FormatBool(nav.Scrolled(y)))
		}
		if fx.home {
			active := nav.ActiveSection(y, browser.OffsetTop)
			for _, a := range links {
				browser.SetClass(a, "is-active", browser.Attr(a, "data-nav-section") == active)
			}
		}
		if fx.rain != nil {
			fx.rain.Scroll(y)
		}
	}
	update()
	fx.track(browser.On(browser.Window(), "scroll", func(js.Value) { update() }))
	fx.track(browser.On(browser.Window(), "resize", func(js.Value) { update() }))
	if top.Truthy() {
		fx.track(browser.On(top, "click", func(js.Value) { browser.ScrollToTop(!fx.reduced()) }))
	}
}

// mountToggles wires the mobile menu and the blog sidebar.
func (fx *effects) mountToggles() {
	for _, btn := range browser.QueryAll(browser.Document(), "button[aria-controls]") {
		btn := btn
		target := browser.ByID(browser.Attr(btn, "aria-controls"))
		if !target.Truthy() {
			continue
		}
		set := func(open bool) {
			btn.Call("setAttribute", "aria-expanded", strconv.FormatBool(open))
			browser.SetClass(target, "is-open", open)
		}
		fx.track(browser.On(btn, "click", func(js.Value) {
			set(browser.Attr(btn, "aria-expanded") != "true")
		}))
		for _, a := range browser.QueryAll(target, "a") {
			fx.track(browser.On(a, "click", func(js.Value) { set(false) }))
		}
	}
}

func (fx *effects) mountHero() {
	hero := browser.ByID("hero")
	if !hero.Truthy() {
		return
	}
	status := browser.ByID("hero-status")
	statement := browser.ByID("hero-statement")
	glitch := hero.Call("querySelector", ".glitch")
	go func() {
		reduce := fx.reduced()
		delay := heroLoadDelay
		if reduce {
			delay = 300 * time.Millisecond
		}
		select {
		case <-time.After(delay):
		case <-fx.done:
			return
		}
		if status.Truthy() {
			status.Set("textContent", browser.Attr(status, "data-loaded"))
		}
		browser.SetClass(hero, "is-loaded", true)
		if dot := hero.Call("querySelector", ".status-dot"); dot.Truthy() {
			dot.Get("classList").Call("add", motion.AnimationClass(reduce, "is-pulsing", "is-steady"))
		}
		if !reduce && statement.Truthy() {
			fx.typeOut(statement, []rune(statement.Get("textContent").String()))
		}
		if !glitch.Truthy() {
			return
		}
		tick := time.NewTicker(glitchEvery)
		defer tick.Stop()
		for {
			select {
			case <-fx.done:
				return
			case <-tick.C:
			}
			if fx.reduced() {
				continue
			}
			browser.SetClass(glitch, "is-glitching", true)
			select {
			case <-time.After(glitchFor):
			case <-fx.done:
			}
			browser.SetClass(glitch, "is-glitching", false)
		}
	}()
}

func (fx *effects) typeOut(el js.Value, text []rune) {
	tick := time.NewTicker(typingInterval)
	defer tick.Stop()
	for i := 1; i <= len(text); i++ {
		el.Set("textContent", string(text[:i]))
		select {
		case <-tick.C:
		case <-fx.done:
			el.Set("textContent", string(text))
			return
		}
	}
}

// enhanceContact submits the contact form in place and swaps in the
// server-rendered section. Without WebAssembly the form posts normally.
func (fx *effects) enhanceContact() {
	form := browser.ByID("contact-form")
	if !form.Truthy() {
		return
	}
	fx.releaseContact = browser.On(form, "submit", func(ev js.Value) {
		ev.Call("preventDefault")
		go fx.submitContact(form)
	})
}

func (fx *effects) submitContact(form js.Value) {
	if browser.Attr(form, "aria-busy") == "true" {
		return
	}
	form.Call("setAttribute", "aria-busy", "true")
	btn := form.Call("querySelector", `button[type="submit"]`)
	label := btn.Get("textContent").String()
	btn.Set("textContent", browser.Attr(form, "data-sending"))
	restore := func() {
		form.Call("removeAttribute", "aria-busy")
		btn.Set("textContent", label)
	}

	token := form.Call("querySelector", `input[name="csrf_token"]`).Get("value").String()
	res, err := browser.PostForm(form.Get("action").String(), form, map[string]any{"X-CSRF-Token": token})
	if err != nil || (res.Status != 200 && res.Status != 422 && res.Status != 503) {
		restore()
		if msg := form.Call("querySelector", ".form-error"); msg.Truthy() {
			msg.Set("textContent", fx.lang.T(networkError))
		}
		return
	}

	section := browser.ByID("contact")
	if fx.releaseContact != nil {
		fx.releaseContact()
		fx.releaseContact = nil
	}
	section.Set("outerHTML", res.Body)
	section = browser.ByID("contact")
	for _, el := range browser.QueryAll(section, "[data-reveal], [data-reveal-item]") {
		browser.SetClass(el, "is-visible", true)
	}
	fx.enhanceContact()
	if toasts := browser.QueryAll(section, ".toast"); len(toasts) > 0 {
		timer := time.AfterFunc(toastFor, func() {
			for _, t := range toasts {
				t.Call("remove")
			}
		})
		fx.track(func() { timer.Stop() })
	}
}

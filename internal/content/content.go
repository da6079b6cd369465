// Package content holds the authored, read-only site content. Every slice is
// shared by reference with templates and must not be mutated.
package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"songdeming.dev/portfolio-web/internal/i18n"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Owner identifies the person the site is about.
var Owner = struct {
	Name         i18n.Pair
	Title        i18n.Pair
	HeroEmail    string
	ContactEmail string
	GitHub       string
	LinkedIn     string
}{
	Name:         i18n.P("Deming Song", "宋德明"),
	Title:        i18n.P("Senior Architect", "高级架构师"),
	HeroEmail:    "songdmwork@163.com",
	ContactEmail: "songdeming@gmail.com",
	GitHub:       "https://github.com/songdeming",
	LinkedIn:     "https://linkedin.com/in/songdeming",
}

// Section is the shared header block of a page section.
type Section struct {
	ID       string
	Kicker   i18n.Pair
	Heading  i18n.Pair
	Subtitle i18n.Pair
}

// Hero is the landing block.
var Hero = struct {
	Loading   i18n.Pair
	Loaded    i18n.Pair
	Statement i18n.Pair
	Talk      i18n.Pair
	Portfolio i18n.Pair
	ScrollCue i18n.Pair
}{
	Loading: i18n.P("initializing profile...", "正在加载档案..."),
	Loaded:  i18n.P("profile loaded successfully", "档案加载成功"),
	Statement: i18n.P(
		"15 years shipping high-scale systems. From 2M+ connected devices to 40+ government bureaus—I architect solutions that perform under pressure.",
		"15年高并发系统架构经验。从200万+物联网设备接入到40+政府委办局共用平台——我专注于构建高性能、可扩展的技术解决方案。",
	),
	Talk:      i18n.P("Let's Talk", "联系我"),
	Portfolio: i18n.P("View Portfolio", "查看作品"),
	ScrollCue: i18n.P("scroll down", "向下滚动"),
}

// Metric is one headline number.
type Metric struct {
	Value string
	Label i18n.Pair
	Desc  i18n.Pair
}

// Domain is one area of expertise.
type Domain struct {
	Icon  string
	Title i18n.Pair
	Desc  i18n.Pair
}

var Credibility = Section{
	ID:      "credibility",
	Kicker:  i18n.P("credentials", "资质概览"),
	Heading: i18n.P("Credibility Snapshot", "能力快照"),
	Subtitle: i18n.P(
		"Building production systems that scale, from startup speed to enterprise reliability.",
		"构建从初创速度到企业级可靠性的生产系统。",
	),
}

var Metrics = []Metric{
	{Value: "15+", Label: i18n.P("Years", "年"), Desc: i18n.P("Java Architecture", "Java架构开发")},
	{Value: "8+", Label: i18n.P("Years", "年"), Desc: i18n.P("GIS/Digital Twin", "GIS/数字孪生")},
	{Value: "10+", Label: i18n.P("Years", "年"), Desc: i18n.P("Internet Scale", "互联网平台")},
	{Value: "20+", Label: i18n.P("People", "人"), Desc: i18n.P("Team Leadership", "团队管理经验")},
}

var Domains = []Domain{
	{Icon: "zap", Title: i18n.P("High Concurrency", "高并发系统"), Desc: i18n.P("100k QPS gateway experience", "10万QPS网关经验")},
	{Icon: "cloud", Title: i18n.P("Cloud Native", "云原生架构"), Desc: i18n.P("K8s, Docker, Istio", "K8s, Docker, Istio")},
	{Icon: "radio", Title: i18n.P("IoT & Real-time", "物联网 & 实时通信"), Desc: i18n.P("MQTT, million-device connections", "MQTT, 百万级设备接入")},
	{Icon: "map-pin", Title: i18n.P("Geospatial Systems", "地理信息系统"), Desc: i18n.P("ArcGIS, PostGIS, 3D tiling", "ArcGIS, PostGIS, 3D瓦片")},
}

var CaseStudies = Section{
	ID:      "cases",
	Kicker:  i18n.P("featured_projects", "精选项目"),
	Heading: i18n.P("Selected Case Studies", "案例研究"),
	Subtitle: i18n.P(
		"Real problems, measurable outcomes. Here's how I approach complex systems.",
		"真实问题，可衡量成果。我如何处理复杂系统。",
	),
}

// AllCasesPage is the header of /cases.
var AllCasesPage = Section{
	ID:      "all-cases",
	Kicker:  i18n.P("all_projects", "全部项目"),
	Heading: i18n.P("All Case Studies", "全部案例"),
	Subtitle: i18n.P(
		"A comprehensive collection of projects spanning IoT, e-commerce, GIS, and enterprise systems.",
		"涵盖物联网、电商、GIS和企业系统的完整项目集合。",
	),
}

// Principle is one How-I-Work card.
type Principle struct {
	Icon  string
	Title i18n.Pair
	Desc  i18n.Pair
}

var HowIWork = Section{
	ID:      "how-i-work",
	Kicker:  i18n.P("approach", "工作方式"),
	Heading: i18n.P("How I Work", "我的工作方式"),
	Subtitle: i18n.P(
		"Principles that guide my approach to building systems and leading teams.",
		"指导我构建系统和领导团队的原则。",
	),
}

var Principles = []Principle{
	{
		Icon:  "target",
		Title: i18n.P("Start with constraints, not features", "从约束出发，而非功能"),
		Desc:  i18n.P("Production reality shapes architecture. I design for what you can't change.", "生产环境决定架构。我为无法改变的约束设计。"),
	},
	{
		Icon:  "bar-chart",
		Title: i18n.P("Measure first, optimize second", "先度量，后优化"),
		Desc:  i18n.P("Data-driven decisions. Every optimization starts with a baseline.", "数据驱动决策。每次优化都从基准开始。"),
	},
	{
		Icon:  "rocket",
		Title: i18n.P("Build for scale, ship for speed", "为规模构建，为速度交付"),
		Desc:  i18n.P("Pragmatic trade-offs. The right architecture at the right time.", "务实权衡。在正确的时间选择正确的架构。"),
	},
	{
		Icon:  "file-text",
		Title: i18n.P("Document decisions, not just code", "记录决策，而非仅仅代码"),
		Desc:  i18n.P("Institutional knowledge matters. Future teams will thank you.", "组织知识很重要。未来的团队会感谢你。"),
	},
	{
		Icon:  "wrench",
		Title: i18n.P("Hands-on when needed", "需要时亲力亲为"),
		Desc:  i18n.P("Not afraid to debug at 2am. I ship alongside my team.", "不怕凌晨2点调试。我和团队一起交付。"),
	},
	{
		Icon:  "message-square",
		Title: i18n.P("Clear communication", "清晰沟通"),
		Desc:  i18n.P("Translate tech complexity for stakeholders. Bridge the gap.", "为利益相关者翻译技术复杂性。弥合差距。"),
	},
}

// Experience is one timeline entry.
type Experience struct {
	Period    i18n.Pair
	Title     i18n.Pair
	Company   i18n.Pair
	Highlight i18n.Pair
}

var Timeline = Section{
	ID:      "timeline",
	Kicker:  i18n.P("experience", "工作经历"),
	Heading: i18n.P("Experience Timeline", "职业历程"),
	Subtitle: i18n.P(
		"15+ years of progressive responsibility across IoT, e-commerce, and enterprise platforms.",
		"15年以上物联网、电商和企业平台的渐进式责任。",
	),
}

var Experiences = []Experience{
	{
		Period:    i18n.P("2024 – Present", "2024 – 至今"),
		Title:     i18n.P("Chief Architect", "首席架构师"),
		Company:   i18n.P("MYA Cards", "MYA卡牌"),
		Highlight: i18n.P("Global platform, dual-region architecture", "全球平台，双区域架构"),
	},
	{
		Period:    i18n.P("2020 – 2023", "2020 – 2023"),
		Title:     i18n.P("Senior Tech Manager", "高级技术经理"),
		Company:   i18n.P("Gas IoT Platform", "燃气物联网平台"),
		Highlight: i18n.P("2M+ devices, million-connection gateway", "200万+设备，百万连接网关"),
	},
	{
		Period:    i18n.P("2018 – 2020", "2018 – 2020"),
		Title:     i18n.P("Senior Dev Manager", "高级研发经理"),
		Company:   i18n.P("Hanwei E-commerce", "汉威电商"),
		Highlight: i18n.P("30M GMV, social commerce", "3000万GMV，社交电商"),
	},
	{
		Period:    i18n.P("2016 – 2018", "2016 – 2018"),
		Title:     i18n.P("Advertising Platform Lead", "广告平台负责人"),
		Company:   i18n.P("Wanda / Feifan", "万达 / 飞凡"),
		Highlight: i18n.P("10-person team, programmatic ads", "10人团队，程序化广告"),
	},
	{
		Period:    i18n.P("2015 – 2016", "2015 – 2016"),
		Title:     i18n.P("Tech Manager", "技术经理"),
		Company:   i18n.P("Suning Advertising", "苏宁广告"),
		Highlight: i18n.P("Ad serving infrastructure", "广告投放基础设施"),
	},
	{
		Period:    i18n.P("2011 – 2015", "2011 – 2015"),
		Title:     i18n.P("GIS Developer / Architect", "GIS开发工程师 / 架构师"),
		Company:   i18n.P("Government Systems", "政府系统项目"),
		Highlight: i18n.P("Spatial data, government platforms", "空间数据，政府平台"),
	},
}

var Education = struct {
	Degree i18n.Pair
	School i18n.Pair
}{
	Degree: i18n.P("Master's in GIS", "GIS硕士学位"),
	School: i18n.P("China Agricultural University, 2007", "中国农业大学, 2007"),
}

var Contact = Section{
	ID:       "contact",
	Kicker:   i18n.P("contact", "联系方式"),
	Heading:  i18n.P("Let's Talk Architecture", "聊聊架构"),
	Subtitle: i18n.P("Building something complex? Let's talk architecture.", "要构建复杂系统？让我们聊聊架构。"),
}

// ContactText is the static text around the contact form.
type ContactText struct {
	GetInTouch   i18n.Pair
	Connect      i18n.Pair
	Availability i18n.Pair
	Name         i18n.Pair
	NameHint     i18n.Pair
	Email        i18n.Pair
	EmailHint    i18n.Pair
	Message      i18n.Pair
	MessageHint  i18n.Pair
	Send         i18n.Pair
	Sending      i18n.Pair
	Footer       i18n.Pair
}

var ContactCopy = ContactText{
	GetInTouch:   i18n.P("Get in touch", "联系我"),
	Connect:      i18n.P("Connect", "社交链接"),
	Availability: i18n.P("Available for senior architecture roles, consulting, and advisory work.", "可接受高级架构职位、咨询和顾问工作。"),
	Name:         i18n.P("Name", "姓名"),
	NameHint:     i18n.P("Your name", "您的姓名"),
	Email:        i18n.P("Email", "邮箱"),
	EmailHint:    i18n.P("your@email.com", "your@email.com"),
	Message:      i18n.P("Message", "留言"),
	MessageHint:  i18n.P("Tell me about your project or opportunity...", "告诉我您的项目或机会..."),
	Send:         i18n.P("Send Message", "发送消息"),
	Sending:      i18n.P("Sending...", "发送中..."),
	Footer:       i18n.P("Built with Go + WebAssembly", "使用 Go + WebAssembly 构建"),
}

// Common holds strings shared by several pages.
var Common = struct {
	BackHome   i18n.Pair
	MoreCases  i18n.Pair
	Talk       i18n.Pair
	CaseCount  i18n.Pair
	CTA        i18n.Pair
	BackToTop  i18n.Pair
	Context    i18n.Pair
	WhatIDid   i18n.Pair
	Outcome    i18n.Pair
	BlogPosts  i18n.Pair
	Thanks     i18n.Pair
	SelectPost i18n.Pair
	Posts      i18n.Pair
}{
	BackHome:   i18n.P("Back to Home", "返回首页"),
	MoreCases:  i18n.P("More Cases", "更多案例"),
	Talk:       i18n.P("Let's Talk", "联系我"),
	CaseCount:  i18n.P("%d projects", "共 %d 个项目"),
	CTA:        i18n.P("Interested in working together? Let's discuss your project.", "有兴趣合作？让我们讨论您的项目。"),
	BackToTop:  i18n.P("Back to top", "返回顶部"),
	Context:    i18n.P("Context", "背景"),
	WhatIDid:   i18n.P("What I Did", "我的工作"),
	Outcome:    i18n.P("Outcome", "成果"),
	BlogPosts:  i18n.P("Blog Posts", "博客文章"),
	Thanks:     i18n.P("Thanks for reading! Feel free to reach out if you have questions.", "感谢阅读！如有问题欢迎联系我。"),
	SelectPost: i18n.P("Select a post to read", "选择一篇文章阅读"),
	Posts:      i18n.P("Posts", "文章"),
}

// Stagger delays in milliseconds between sibling reveals.
const (
	CasesStaggerMS      = 200
	AllCasesStaggerMS   = 100
	PrinciplesStaggerMS = 100
	TimelineStaggerMS   = 150
)

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("content: decode %s: %w", name, err)
	}
	return nil
}

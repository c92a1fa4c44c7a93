package components

// Class names used by the section markup.
const (
	ClassFeatures   = "features"
	ClassFeatureSvg = "featureSvg"
	ClassContainer  = "container"
	ClassRow        = "row"
	ClassColumn     = "col col--4"
	ClassCenter     = "text--center"
	ClassBody       = "text--center padding-horiz--md"
)

// Stylesheet is the CSS the section expects from its host page. The preview
// page inlines it; a real site supplies its own container and grid rules.
const Stylesheet = `
*, *::before, *::after { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif; color: #1c1e21; line-height: 1.65; }
.hero { padding: 4rem 0; text-align: center; background: #e8553e; color: #fff; }
.hero h1 { margin: 0 0 .5rem; font-size: 3rem; }
.hero p { margin: 0; font-size: 1.5rem; }
.container { max-width: 1140px; margin: 0 auto; padding: 0 1rem; }
.row { display: flex; flex-wrap: wrap; margin: 0 -1rem; }
.col { flex: 1 0; padding: 0 1rem; max-width: 100%; }
.col--4 { flex: 0 0 33.333%; max-width: 33.333%; }
.text--center { text-align: center; }
.padding-horiz--md { padding-left: 1rem; padding-right: 1rem; }
.features { display: flex; align-items: center; padding: 2rem 0; width: 100%; }
.featureSvg { height: 200px; width: 200px; }
@media (max-width: 996px) { .col--4 { flex-basis: 100%; max-width: 100%; } }
`

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJobHTMLStripsBoilerplate(t *testing.T) {
	raw := `<html><head><style>.x{color:red}</style><script>alert(1)</script></head>
	<body><nav>Home | Jobs | About</nav>
	<main><h1>Senior Go Engineer</h1><p>Build  distributed   systems.</p></main>
	<footer>© ACME 2026</footer></body></html>`

	text := CleanJobHTML(raw)
	assert.Contains(t, text, "Senior Go Engineer")
	assert.Contains(t, text, "Build distributed systems.")
	assert.NotContains(t, text, "alert(1)")
	assert.NotContains(t, text, "color:red")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "ACME 2026")
}

func TestCleanJobHTMLPlainText(t *testing.T) {
	assert.Equal(t, "just a plain description", CleanJobHTML("just   a\nplain  description"))
}

// Package gorules holds go-ruleguard checks run through gocritic's ruleguard
// analyzer.
package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two guards returning the same value can be one guard.
	//   if a { return err }
	//   if b { return err }
	//   => if a || b { return err }
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// Not always wrong, but usually worth extracting.
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}

// upstreamHTTP flags outbound calls that bypass a context or the provider's
// own client. Upstream model calls must be cancellable and honour LLM_TIMEOUT.
func upstreamHTTP(m dsl.Matcher) {
	m.Match(`http.Post($*_)`, `http.Get($*_)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`package-level http helper has no context or timeout; build the request with http.NewRequestWithContext`)

	m.Match(`http.DefaultClient`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`http.DefaultClient has no timeout; use the provider's configured client`)

	m.Match(`http.NewRequest($method, $url, $body)`).
		Where(!m.File().Name.Matches(`_test\.go$`)).
		Report(`use http.NewRequestWithContext so callers can cancel`).
		Suggest(`http.NewRequestWithContext(ctx, $method, $url, $body)`)
}

// logging keeps output on the zerolog logger passed down by constructors.
// Stdout belongs to `tripgen generate` and `tripgen mcp`.
func logging(m dsl.Matcher) {
	m.Match(`fmt.Println($*_)`, `fmt.Printf($*_)`, `log.Printf($*_)`, `log.Println($*_)`).
		Where(!m.File().PkgPath.Matches(`/cmd/`) && !m.File().Name.Matches(`_test\.go$`)).
		Report(`write through the injected zerolog.Logger instead of stdout or the standard logger`)

	m.Match(`zerolog.New(os.Stdout)`).
		Report(`stdout is reserved for command output; log to stderr via logging.New`)
}

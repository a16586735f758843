// Package report renders plan envelopes to HTML and PDF for the
// presentation layer. Nothing here feeds back into the decision engine.
package report

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const planStyleCSS = `
body{font-family:Georgia,serif;color:#1c1917;margin:0;}
.plan-wrap{max-width:900px;margin:0 auto;padding:0.6rem;}
.plan-header{border-bottom:2px solid #166534;margin-bottom:1rem;padding-bottom:0.5rem;}
.plan-meta{color:#44403c;font-size:0.9rem;}
.plan-meta strong{color:#1c1917;}
.plan-badge{display:inline-block;background:#dcfce7;color:#14532d;border:1px solid #86efac;border-radius:4px;padding:0.1rem 0.5rem;margin-right:0.3rem;font-size:0.8rem;}
.plan-badge.urgent{background:#fee2e2;color:#7f1d1d;border-color:#fca5a5;}
.plan-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.85rem;}
.plan-html th,.plan-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
.plan-html thead th{background:#f0fdf4;font-weight:700;}
h2{break-inside:avoid;}
`

// RenderHTML converts a plan report (markdown, or a full JSON envelope
// carrying report_markdown) into a standalone HTML document.
func RenderHTML(report string) (string, error) {
	markdown := report
	metaHTML := ""
	badgeHTML := ""

	var envelope map[string]any
	if json.Unmarshal([]byte(report), &envelope) == nil {
		if s, ok := envelope["report_markdown"].(string); ok && strings.TrimSpace(s) != "" {
			markdown = s
		}
		metaHTML = buildMetaHTML(envelope)
		badgeHTML = buildBadgeHTML(envelope)
	}

	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(markdown), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Crop Management Plan</title>" +
		"<style>" + planStyleCSS + "</style></head><body>" +
		"<div class='plan-wrap'><div class='plan-header'>" +
		"<div class='plan-meta'>" + metaHTML + "</div>" +
		"<div class='plan-badges'>" + badgeHTML + "</div>" +
		"</div><div class='plan-html'>" + content.String() + "</div></div>" +
		"</body></html>", nil
}

func buildMetaHTML(env map[string]any) string {
	var out strings.Builder
	if preds, ok := env["predictions"].([]any); ok && len(preds) > 0 {
		if first, ok := preds[0].(map[string]any); ok {
			if d := stringValue(first["disease"]); d != "" {
				out.WriteString("<div><strong>Diagnosis:</strong> " + html.EscapeString(d) + "</div>")
			}
		}
	}
	if generated := lookupString(env, "generated_at"); generated != "" {
		if ts, err := time.Parse(time.RFC3339Nano, generated); err == nil {
			out.WriteString("<div><strong>Date:</strong> " + html.EscapeString(ts.In(time.Local).Format("January 2, 2006 at 3:04 PM MST")) + "</div>")
		} else {
			out.WriteString("<div><strong>Date:</strong> " + html.EscapeString(generated) + "</div>")
		}
	}
	return out.String()
}

func buildBadgeHTML(env map[string]any) string {
	var out strings.Builder
	if u := lookupString(env, "plan", "calculated_urgency"); u != "" {
		class := "plan-badge"
		if u == "high" || u == "critical" {
			class = "plan-badge urgent"
		}
		out.WriteString("<span class='" + class + "'>Urgency: " + html.EscapeString(u) + "</span>")
	}
	if p := lookupString(env, "management_priority", "priority"); p != "" {
		out.WriteString("<span class='plan-badge'>Priority: " + html.EscapeString(p) + "</span>")
	}
	return out.String()
}

func lookupString(root map[string]any, path ...string) string {
	var cur any = root
	for _, p := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[p]
	}
	return stringValue(cur)
}

func stringValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

package health

import (
	"fmt"
	"html"
	"strings"
)

// RenderDashboardHTML renders the plain status page served at GET /.
func RenderDashboardHTML(h CollectResult) string {
	var deps strings.Builder
	for _, name := range []string{"database", "redis"} {
		dep := h.Dependencies[name]
		cls := "err"
		if dep.Status == "connected" {
			cls = "ok"
		}
		ping := "-"
		if dep.PingMs != nil {
			ping = fmt.Sprintf("%d ms", *dep.PingMs)
		}
		deps.WriteString(`<div class="row"><span>` + html.EscapeString(name) +
			`</span><span class="pill ` + cls + `">` + html.EscapeString(dep.Status) +
			` · ` + html.EscapeString(ping) + `</span></div>`)
	}

	headline := "All Systems Operational"
	if h.Status != "ok" {
		headline = "System Issues Detected"
	}

	avg := fmt.Sprint(h.Traffic.AvgResponseTime)

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>SpeedList · API Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { background:#f8f9fa; color:#1a2332; font-family:system-ui,sans-serif; margin:0; display:flex; align-items:center; justify-content:center; min-height:100vh; }
    .card { background:#fff; border-radius:16px; box-shadow:0 10px 40px rgba(0,0,0,0.08); padding:40px; max-width:640px; width:100%; }
    h1 { margin:0 0 4px; font-size:26px; }
    .sub { color:#64748b; font-size:14px; margin-bottom:28px; }
    .label { text-transform:uppercase; font-size:11px; letter-spacing:1.5px; color:#94a3b8; margin:20px 0 8px; }
    .row { display:flex; justify-content:space-between; padding:7px 0; border-bottom:1px solid #f1f5f9; font-size:14px; }
    .pill { font-weight:700; font-size:12px; }
    .ok { color:#0f766e; }
    .err { color:#dc2626; }
  </style>
</head>
<body>
  <div class="card">
    <h1>` + headline + `</h1>
    <div class="sub">SpeedList API · ` + html.EscapeString(h.Runtime.GoVersion) + `</div>
    <div class="label">Traffic</div>
    <div class="row"><span>Total requests</span><span>` + fmt.Sprint(h.Traffic.TotalRequests) + `</span></div>
    <div class="row"><span>Failed</span><span>` + fmt.Sprint(h.Traffic.FailedCount) + `</span></div>
    <div class="row"><span>Success rate</span><span>` + html.EscapeString(h.Traffic.SuccessRate) + `%</span></div>
    <div class="row"><span>Avg latency</span><span>` + html.EscapeString(avg) + ` ms</span></div>
    <div class="label">Resources</div>
    <div class="row"><span>Uptime</span><span>` + fmt.Sprint(h.Runtime.UptimeSeconds) + ` s</span></div>
    <div class="row"><span>Heap in use</span><span>` + fmt.Sprint(h.Runtime.Memory.HeapUsedMB) + ` MB</span></div>
    <div class="label">Connectivity</div>
    ` + deps.String() + `
  </div>
</body>
</html>`
}

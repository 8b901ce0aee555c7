package server

import "html/template"

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Setlist Archive</title>
<style>
body { margin: 0; background: #fbfaf7; color: #1d1f23; font-family: Helvetica, Arial, sans-serif; }
header { display: flex; gap: 12px; align-items: center; padding: 12px 24px; }
header input { width: 320px; padding: 4px 8px; }
#now { color: #6b7079; }
#scene svg { display: block; }
</style>
</head>
<body>
<header>
<form method="get" action="/">
<input type="search" name="q" value="{{.Query}}" placeholder="Search songs, venues, cities, countries" list="suggestions" autocomplete="off">
<datalist id="suggestions"></datalist>
<button type="submit">Filter</button>
{{if .Query}}<a href="/?clear=1">Clear</a>{{end}}
</form>
<span id="now">{{if .Playing}}Playing: {{.Playing}}{{end}}</span>
</header>
{{if .Message}}<p class="message">{{.Message}}</p>{{end}}
<div id="scene">{{.SVG}}</div>
<script>
(function () {
  const scene = document.getElementById("scene");
  const now = document.getElementById("now");
  const input = document.querySelector("input[name=q]");
  const list = document.getElementById("suggestions");

  async function refresh() {
    const res = await fetch("/scene.svg");
    if (res.ok) scene.innerHTML = await res.text();
    const np = await fetch("/api/now-playing").then(r => r.json());
    now.textContent = np.playing ? "Playing: " + np.title : "";
  }

  function entryId(target) {
    const g = target.closest && target.closest("g.entry.linked");
    return g ? g.id : "";
  }

  scene.addEventListener("mouseover", e => {
    const id = entryId(e.target);
    if (id) fetch("/api/entries/" + encodeURIComponent(id) + "/hover", {method: "POST"}).then(refresh);
  });
  scene.addEventListener("mouseout", e => {
    const id = entryId(e.target);
    if (id) fetch("/api/entries/" + encodeURIComponent(id) + "/hover", {method: "DELETE"}).then(refresh);
  });
  scene.addEventListener("click", e => {
    const id = entryId(e.target);
    if (!id) return;
    e.preventDefault();
    fetch("/api/entries/" + encodeURIComponent(id) + "/click", {method: "POST"}).then(refresh);
  });

  input.addEventListener("input", async () => {
    const res = await fetch("/api/autocomplete?q=" + encodeURIComponent(input.value));
    const body = await res.json();
    list.replaceChildren(...body.suggestions.map(s => {
      const o = document.createElement("option");
      o.value = s.text;
      o.label = s.type;
      return o;
    }));
  });

  setInterval(refresh, 1000);
})();
</script>
</body>
</html>
`))

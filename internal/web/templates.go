package web

const indexHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Doctrack</title>
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <main class="container">
      <header class="header">
        <h1 class="title">Doctrack</h1>
        <span class="badge" id="total-files">{{.Total}} attachments</span>
        <nav class="modes">
          <a href="/?group=time{{if .Query}}&amp;q={{.Query}}{{end}}" {{if eq .Mode "time"}}class="active"{{end}}>By time</a>
          <a href="/?group=category{{if .Query}}&amp;q={{.Query}}{{end}}" {{if eq .Mode "category"}}class="active"{{end}}>By category</a>
        </nav>
        <form class="search" method="get" action="/">
          <input type="hidden" name="group" value="{{.Mode}}" />
          <input type="text" name="q" value="{{.Query}}" placeholder="Search rows" />
          <button type="submit">Search</button>
        </form>
      </header>

      {{if .Alert}}
      <div class="alert" role="alert">{{.Alert}}</div>
      {{end}}

      <section class="create">
        <form method="post" action="/rows"
              onsubmit="var b=this.querySelector('button[type=submit]');b.disabled=true;b.textContent='Saving...';">
          <input type="hidden" name="group" value="{{.Mode}}" />
          <input type="hidden" name="q" value="{{.Query}}" />
          <input type="text" name="title" placeholder="Title" required />
          <input type="text" name="category" placeholder="Category" />
          <input type="text" name="note" placeholder="Note" />
          <button type="submit">Add row</button>
        </form>
      </section>

      {{if .Empty}}
      <p class="empty">No rows yet.</p>
      {{end}}

      {{$mode := .Mode}}
      {{$query := .Query}}
      {{$kinds := .Kinds}}
      {{range .Tables}}
      <section class="group">
        {{if .ShowLabel}}<h2 class="group-label">{{.Label}}</h2>{{end}}
        <table>
          <thead>
            <tr>
              <th>Created</th>
              <th>Title</th>
              <th>Note</th>
              <th>Category</th>
              {{range $kinds}}<th>{{.Label}}</th>{{end}}
              <th></th>
            </tr>
          </thead>
          <tbody>
            {{range .Rows}}
            <tr>
              <td class="created">{{.CreatedAt}}</td>
              <td class="row-title">{{.Title}}</td>
              <td>{{if .Note}}{{.Note}}{{else}}<span class="placeholder">&nbsp;</span>{{end}}</td>
              <td>{{if .Category}}<span class="category-badge">{{.Category}}</span>{{end}}</td>
              {{$rowID := .ID}}
              {{range .Cells}}
              <td class="kind-cell">
                <ul class="files">
                  {{range .Files}}
                  <li class="file-entry">
                    <a href="{{.DownloadURL}}">{{.Name}}</a>
                    <form method="post" action="/files/{{.ID}}/delete" class="inline">
                      <input type="hidden" name="group" value="{{$mode}}" />
                      <input type="hidden" name="q" value="{{$query}}" />
                      <button type="submit" class="danger small"
                              onclick="return confirm('Delete this file?')">x</button>
                    </form>
                  </li>
                  {{end}}
                </ul>
                <form method="post" action="/rows/{{$rowID}}/upload" enctype="multipart/form-data"
                      onsubmit="var b=this.querySelector('button');b.disabled=true;b.textContent='Uploading...';">
                  <input type="hidden" name="group" value="{{$mode}}" />
                  <input type="hidden" name="q" value="{{$query}}" />
                  <input type="hidden" name="kind" value="{{.Kind.Key}}" />
                  <input type="file" name="file" />
                  <button type="submit" class="small">Attach</button>
                </form>
              </td>
              {{end}}
              <td>
                <form method="post" action="/rows/{{$rowID}}/delete" class="inline">
                  <input type="hidden" name="group" value="{{$mode}}" />
                  <input type="hidden" name="q" value="{{$query}}" />
                  <button type="submit" class="danger"
                          onclick="return confirm('Delete this row? All attached files will be deleted too.')">Delete</button>
                </form>
              </td>
            </tr>
            {{end}}
          </tbody>
        </table>
      </section>
      {{end}}
    </main>
  </body>
</html>
`

const appCSS = `:root {
  --fg: #1c1c1c;
  --muted: #6b6b6b;
  --border: #d8d8d8;
  --accent: #2b5fad;
  --danger: #a33030;
  --bg: #fafafa;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  color: var(--fg);
  background: var(--bg);
  font-family: system-ui, -apple-system, sans-serif;
  font-size: 14px;
}

.container { max-width: 1200px; margin: 0 auto; padding: 1.5rem; }

.header { display: flex; align-items: center; gap: 1rem; flex-wrap: wrap; }
.title { margin: 0; font-size: 1.4rem; }

.badge {
  background: var(--accent);
  color: #fff;
  border-radius: 999px;
  padding: 0.15rem 0.6rem;
  font-size: 0.8rem;
}

.modes a { color: var(--muted); text-decoration: none; margin-right: 0.5rem; }
.modes a.active { color: var(--accent); font-weight: 600; }

.search { margin-left: auto; }

.alert {
  margin-top: 1rem;
  padding: 0.6rem 0.8rem;
  border: 1px solid var(--danger);
  border-radius: 4px;
  color: var(--danger);
  background: #fdf0f0;
}

.create { margin: 1rem 0; }
.create form { display: flex; gap: 0.5rem; flex-wrap: wrap; }

.empty { color: var(--muted); margin-top: 2rem; }

.group-label { margin: 1.5rem 0 0.5rem; font-size: 1.1rem; }

table { width: 100%; border-collapse: collapse; background: #fff; }
th, td { border: 1px solid var(--border); padding: 0.4rem 0.5rem; text-align: left; vertical-align: top; }
th { background: #f0f0f0; }

.created { white-space: nowrap; color: var(--muted); }
.row-title { font-weight: 600; }

.category-badge {
  background: #e8eef8;
  color: var(--accent);
  border-radius: 3px;
  padding: 0.05rem 0.4rem;
  font-size: 0.8rem;
}

.files { list-style: none; margin: 0 0 0.3rem; padding: 0; }
.file-entry { display: flex; align-items: center; gap: 0.3rem; }

form.inline { display: inline; }

button { cursor: pointer; }
button.small { font-size: 0.75rem; }
button.danger { color: var(--danger); }
button:disabled { cursor: wait; opacity: 0.6; }
`

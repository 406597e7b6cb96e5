package browse

import (
	"html"
	"io"
	"strconv"
	"strings"
)

const css = `
a { text-decoration: none; display: inline-block; width: 100%; }
a.folder { color: #b5860a; }
a.file { color: #2b2b2b; }
table { border-collapse: collapse; }
td { padding: 2px 12px 2px 0; }
td.size { text-align: right; color: #666; }
td.created { text-align: right; color: #666; }
`

const filterScript = `
(function() {
  var input = document.getElementById('filter');
  if (!input) return;
  input.addEventListener('input', function() {
    var q = input.value.toLowerCase();
    var rows = document.querySelectorAll('tr.entry');
    for (var i = 0; i < rows.length; i++) {
      var name = rows[i].getAttribute('data-name') || '';
      rows[i].style.display = name.indexOf(q) === -1 ? 'none' : '';
    }
  });
})();
`

// writeListing streams the directory listing in three parts — head/prologue,
// entry rows, trailing script — so a directory with many entries never
// buffers the whole page in memory.
func writeListing(w io.Writer, parentHref string, entries []entry) {
	writePrologue(w, parentHref, entries)
	for _, e := range entries {
		writeEntry(w, e)
	}
	writeEpilogue(w)
}

func writePrologue(w io.Writer, parentHref string, entries []entry) {
	folders, files := 0, 0
	for _, e := range entries {
		if e.isDir {
			folders++
		} else {
			files++
		}
	}

	io.WriteString(w, "<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\"><style>"+css+"</style></head><body>")
	io.WriteString(w, "<div>")
	io.WriteString(w, strconv.Itoa(folders)+" directories, "+strconv.Itoa(files)+" files")
	io.WriteString(w, "</div>")
	io.WriteString(w, "<input style=\"width: 50%\" placeholder=\"Filter\" id=\"filter\">")
	io.WriteString(w, "<table style=\"width: 100%\"><thead><tr><th></th><th></th><th></th></tr></thead><tbody>")
	if parentHref != "" {
		io.WriteString(w, "<tr><td><a class=\"folder\" href=\""+html.EscapeString(parentHref)+"\">&uarr; up</a></td><td></td><td></td></tr>")
	}
}

func writeEntry(w io.Writer, e entry) {
	class := "file"
	displayName := e.name
	size := prettyBytes(e.size)
	if e.isDir {
		class = "folder"
		displayName += "/"
		size = "—"
	}
	io.WriteString(w, "<tr class=\"entry\" data-name=\""+html.EscapeString(strings.ToLower(e.name))+"\">")
	io.WriteString(w, "<td><a class=\""+class+"\" href=\""+html.EscapeString(e.href)+"\"><span class=\"filename\">"+html.EscapeString(displayName)+"</span></a></td>")
	io.WriteString(w, "<td class=\"size\">"+html.EscapeString(size)+"</td>")
	io.WriteString(w, "<td class=\"created\">"+strconv.FormatInt(e.created, 10)+"</td>")
	io.WriteString(w, "</tr>")
}

func writeEpilogue(w io.Writer) {
	io.WriteString(w, "</tbody></table>")
	io.WriteString(w, "<script>"+filterScript+"</script>")
	io.WriteString(w, "</body></html>")
}

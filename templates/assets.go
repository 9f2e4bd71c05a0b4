package templates

// Static page chrome. The style block carries one class per rating so the
// server only ever emits a class name, never inline styling.
const pageHead = `<!DOCTYPE html>
<html lang="zh-Hant">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>台股觀察清單</title>
<style>
body { font-family: "Noto Sans TC", "PingFang TC", sans-serif; margin: 0 auto; max-width: 960px; padding: 1rem; background: #fafafa; color: #222; }
header { display: flex; flex-wrap: wrap; align-items: center; gap: 1rem; margin-bottom: 1rem; }
h1 { font-size: 1.4rem; margin: 0; }
#add-form input { padding: 0.4rem 0.6rem; width: 240px; border: 1px solid #bbb; border-radius: 4px; }
#add-form button { padding: 0.4rem 0.9rem; border: none; border-radius: 4px; background: #1a73e8; color: #fff; cursor: pointer; }
.filter-toggle { margin-left: auto; font-size: 0.9rem; color: #1a73e8; text-decoration: none; }
.add-error { width: 100%; color: #c0392b; font-size: 0.9rem; }
.notice { background: #fff3cd; border: 1px solid #ffe08a; border-radius: 4px; padding: 0.5rem 0.8rem; margin-bottom: 1rem; font-size: 0.9rem; }
.empty-state { color: #666; text-align: center; padding: 3rem 0; }
table { width: 100%; border-collapse: collapse; background: #fff; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
th, td { padding: 0.5rem 0.7rem; text-align: left; border-bottom: 1px solid #eee; font-size: 0.92rem; }
th[data-key] { cursor: pointer; user-select: none; }
th[data-key]::after { content: " ⇅"; color: #bbb; font-size: 0.8em; }
th[data-key].asc::after { content: " ↑"; color: #1a73e8; }
th[data-key].desc::after { content: " ↓"; color: #1a73e8; }
td a { color: #1a73e8; text-decoration: none; }
.change-up { color: #c0392b; }
.change-down { color: #2e8b57; }
.change-flat { color: #666; }
.rating { padding: 0.15rem 0.5rem; border-radius: 10px; font-size: 0.85rem; white-space: nowrap; cursor: help; }
.rating-strong-buy { background: #c0392b; color: #fff; }
.rating-buy { background: #e4572e; color: #fff; }
.rating-short-bullish { background: #f0a04b; color: #fff; }
.rating-watch { background: #e0e0e0; color: #444; }
.rating-sell { background: #6aa84f; color: #fff; }
.rating-avoid { background: #2e8b57; color: #fff; }
.rating-no-data { background: #f5f5f5; color: #999; border: 1px dashed #ccc; }
.spark-empty { color: #bbb; }
button.remove { border: none; background: none; color: #bbb; cursor: pointer; font-size: 0.9rem; }
button.remove:hover { color: #c0392b; }
</style>
</head>
<body>`

const pageFoot = `<script>
(function () {
  var form = document.getElementById("add-form");
  var errBox = document.getElementById("add-error");

  if (form) {
    form.addEventListener("submit", function (e) {
      e.preventDefault();
      var query = document.getElementById("add-input").value.trim();
      if (!query) return;
      fetch("/api/watchlist", {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ query: query })
      }).then(function (res) {
        if (res.ok) { location.reload(); return; }
        return res.json().then(function (body) {
          errBox.textContent = body.error || "加入失敗，請稍後再試";
          errBox.hidden = false;
        });
      });
    });
  }

  document.querySelectorAll("button.remove").forEach(function (btn) {
    btn.addEventListener("click", function () {
      fetch("/api/watchlist/" + encodeURIComponent(btn.dataset.symbol), { method: "DELETE" })
        .then(function (res) { if (res.ok) location.reload(); });
    });
  });

  // Column sorting cycles ascending, descending, then back to server order.
  var tbody = document.querySelector("#watchlist tbody");
  document.querySelectorAll("th[data-key]").forEach(function (th, col) {
    th.addEventListener("click", function () {
      var state = th.classList.contains("asc") ? "desc" : th.classList.contains("desc") ? "none" : "asc";
      document.querySelectorAll("th[data-key]").forEach(function (h) { h.classList.remove("asc", "desc"); });
      var rows = Array.prototype.slice.call(tbody.querySelectorAll("tr"));
      if (state === "none") {
        rows.sort(function (a, b) { return a.dataset.index - b.dataset.index; });
      } else {
        th.classList.add(state);
        var cell = function (tr) {
          var td = tr.children[Array.prototype.indexOf.call(th.parentNode.children, th)];
          var v = td.dataset.value;
          var n = parseFloat(v);
          return isNaN(n) ? v : n;
        };
        rows.sort(function (a, b) {
          var av = cell(a), bv = cell(b);
          var cmp = av < bv ? -1 : av > bv ? 1 : 0;
          return state === "asc" ? cmp : -cmp;
        });
      }
      rows.forEach(function (tr) { tbody.appendChild(tr); });
    });
  });
})();
</script>
</body>
</html>`

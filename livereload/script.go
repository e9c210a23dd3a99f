package livereload

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// clientScript reconnects with capped backoff so the page picks the
// connection back up after a server restart.
const clientScript = `(() => {
  const connect = (delay) => {
    const ws = new WebSocket(%s);
    ws.onmessage = (ev) => {
      if (ev.data === %q) {
        window.location.reload();
      }
    };
    ws.onclose = () => {
      setTimeout(() => connect(Math.min(delay * 2, 5000)), delay);
    };
  };
  connect(250);
})();`

// ScriptTag returns a script element embedding the reload client,
// pointed at the hub's websocket URL:
//
//	@livereload.ScriptTag("ws://localhost:8080/hmr")
func ScriptTag(url string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		// JSON quoting produces a valid JS string literal and keeps
		// angle brackets out of the script body.
		quoted, err := json.Marshal(url)
		if err != nil {
			return err
		}

		if _, err := io.WriteString(w, `<script type="text/javascript">`); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, clientScript, quoted, reloadMessage); err != nil {
			return err
		}
		_, err = io.WriteString(w, `</script>`)

		return err
	})
}

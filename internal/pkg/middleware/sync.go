package middleware

import "net/http"

// SnapshotPusher agenda o envio do arquivo do banco para o storage.
type SnapshotPusher interface {
	PushAsync()
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// SnapshotSync dispara o envio do snapshot depois de toda escrita concluída com 2xx.
// O envio é assíncrono e não altera a resposta.
func SnapshotSync(pusher SnapshotPusher) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if pusher == nil || !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			if rec.status >= 200 && rec.status < 300 {
				pusher.PushAsync()
			}
		})
	}
}

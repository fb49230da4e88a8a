package handle_resources

import (
	"io"
	"net/http"
	"strings"

	"github.com/KincaidYang/whoisparser/metrics"
	"github.com/KincaidYang/whoisparser/utils"
	"github.com/KincaidYang/whoisparser/whois_tools"
)

// maxInterpretBody bounds the raw text accepted by HandleInterpret.
const maxInterpretBody = 1 << 20

// HandleInterpret interprets a raw WHOIS response posted as the request
// body. The optional "domain" and repeated "server" query parameters feed
// the WHOIS server list of the record.
func HandleInterpret(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		utils.WriteJSON(w, http.StatusMethodNotAllowed, utils.ErrorResponse{Error: "Method not allowed"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxInterpretBody+1))
	if err != nil {
		utils.HandleHTTPError(w, utils.ErrorTypeBadRequest, "Cannot read request body")
		return
	}
	if len(body) > maxInterpretBody {
		utils.HandleHTTPError(w, utils.ErrorTypeBadRequest, "Request body too large")
		return
	}

	query := r.URL.Query()
	domain := strings.ToLower(strings.TrimSpace(query.Get("domain")))
	if domain != "" {
		if normalized, _, err := utils.NormalizeDomain(domain); err == nil {
			domain = normalized
		}
	}

	raw := string(body)
	result := whois_tools.NewWhoIsResult(raw, whois_tools.MatchPatterns(raw), domain, query["server"])
	metrics.ObserveVerdict(result.Verdict().String(), result.Tier())

	utils.WriteJSON(w, http.StatusOK, result)
}

package player

import (
	"net/url"

	"github.com/ytget/ytx/types"
)

// ResolveStreamURL builds the final fetchable URL for a stream. Streams
// with a direct URL only get their n parameter transformed; ciphered
// streams have the s payload descrambled first and attached under the sp
// query key. Pure over its inputs; no IO.
func ResolveStreamURL(p *Program, s *types.Stream) (string, error) {
	if s.URL != "" {
		return finishURL(p, s.URL)
	}
	if s.SignatureCipher == "" {
		return "", NewError(ErrCodeInvalidCipherInput, "stream has neither url nor cipher payload", s.Itag)
	}

	payload, err := url.ParseQuery(s.SignatureCipher)
	if err != nil {
		return "", NewError(ErrCodeInvalidCipherInput, "unparseable cipher payload", err.Error())
	}
	sig := payload.Get("s")
	target := payload.Get("url")
	if sig == "" || target == "" {
		return "", NewError(ErrCodeInvalidCipherInput, "cipher payload missing s or url", s.Itag)
	}
	sp := payload.Get("sp")
	if sp == "" {
		sp = "signature"
	}

	deciphered, err := p.DecipherSignature(sig)
	if err != nil {
		return "", err
	}

	u, err := url.Parse(target)
	if err != nil {
		return "", NewError(ErrCodeInvalidCipherInput, "unparseable target url", err.Error())
	}
	q := u.Query()
	q.Set(sp, deciphered)
	u.RawQuery = q.Encode()
	return finishURL(p, u.String())
}

// finishURL applies the n transform and the download-friendly query flags.
func finishURL(p *Program, raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", NewError(ErrCodeInvalidCipherInput, "unparseable stream url", err.Error())
	}
	q := u.Query()
	if nval := q.Get("n"); nval != "" {
		nout, err := p.ResolveNParam(nval)
		if err != nil {
			return "", err
		}
		q.Set("n", nout)
	}
	// Ranged requests are throttled without these.
	if q.Get("ratebypass") == "" {
		q.Set("ratebypass", "yes")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

package utils

import (
	"net/url"
	"sort"
)

func SliceToSet[T comparable](ids []T) map[T]struct{} {
	res := make(map[T]struct{}, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}
	return res
}

func CheckInSlice[T comparable](in []T, all ...T) bool {
	set := SliceToSet(in)
	for _, a := range all {
		if _, ok := set[a]; !ok {
			return false
		}
	}
	return true
}

func SortedKeys[V any](m map[string]V) []string {
	res := make([]string, 0, len(m))
	for k := range m {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// CheckHttps подменяет схему на https, если сервис стоит за прокси с TLS.
func CheckHttps(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	if u.Scheme == "http" && u.Port() == "" && u.Hostname() != "localhost" {
		res := *u
		res.Scheme = "https"
		return &res
	}
	return u
}

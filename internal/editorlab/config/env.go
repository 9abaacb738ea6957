package config

import (
	"os"
	"strconv"
)

// lookupEnv возвращает значение переменной. Пустое значение считается незаданным.
func lookupEnv(key string) (string, bool) {
	val, ok := os.LookupEnv(key)
	return val, ok && val != ""
}

func parseInt(val string) (int, error) {
	return strconv.Atoi(val)
}

func parseBool(val string) (bool, error) {
	return strconv.ParseBool(val)
}

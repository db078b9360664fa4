package zjson

import (
	"encoding/json"
	"os"

	"github.com/torlangballe/mdhist/zlog"
)

func MarshalToFile(from interface{}, fpath string) error {
	file, err := os.Create(fpath)
	if err != nil {
		return err
	}
	defer file.Close()
	encoder := json.NewEncoder(file)
	err = encoder.Encode(from)
	if err != nil {
		return zlog.Error(err, "marshal", from)
	}
	return nil
}

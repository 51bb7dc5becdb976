package api

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strconv"

	"github.com/pingcap/errcode"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/log"
	"github.com/unrolled/render"
)

var regionErrorCode = errcode.StateCode.Child("state.region")

// regionError is a region level failure of an admin command. The protobuf form of the error is sent
// to the client as data.
type regionError struct {
	err error
}

func (e regionError) Error() string {
	return e.err.Error()
}

func (e regionError) Code() errcode.Code {
	return regionErrorCode
}

func (e regionError) GetClientData() interface{} {
	return util.RegionErrToPbError(e.err)
}

var _ errcode.HasClientData = regionError{}

// toErrorCode classifies an error of the region store.
func toErrorCode(err error) errcode.ErrorCode {
	cause := errors.Cause(err)
	if _, ok := cause.(*util.ErrRegionNotFound); ok {
		return errcode.NewNotFoundErr(err)
	}
	if util.IsRegionError(cause) {
		return regionError{cause}
	}
	return errcode.NewInternalErr(err)
}

// errorResp writes err as JSON. Errors carrying an error code set the HTTP status and the
// error code header.
func errorResp(rd *render.Render, w http.ResponseWriter, err error) {
	if err == nil {
		log.Error("nil is given to errorResp")
		rd.JSON(w, http.StatusInternalServerError, "nil error")
		return
	}
	if errCode := errcode.CodeChain(err); errCode != nil {
		w.Header().Set("TxnKV-Error-Code", errCode.Code().CodeStr().String())
		rd.JSON(w, errCode.Code().HTTPCode(), errcode.NewJSONFormat(errCode))
	} else {
		rd.JSON(w, http.StatusInternalServerError, err.Error())
	}
}

// readJSON decodes the request body into data. An empty body leaves data untouched.
func readJSON(r io.ReadCloser, data interface{}) error {
	defer r.Close()
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return errors.WithStack(err)
	}
	if len(b) == 0 {
		return nil
	}
	return errors.WithStack(json.Unmarshal(b, data))
}

// readJSONRespondError reads the body and writes an input error when it cannot be decoded.
func readJSONRespondError(rd *render.Render, w http.ResponseWriter, body io.ReadCloser, data interface{}) error {
	err := readJSON(body, data)
	if err != nil {
		errorResp(rd, w, errcode.NewInvalidInputErr(err))
	}
	return err
}

func parseUint64VarsField(vars map[string]string, varName string) (uint64, error) {
	str, ok := vars[varName]
	if !ok {
		return 0, errors.Errorf("field %s not present", varName)
	}
	v, err := strconv.ParseUint(str, 10, 64)
	return v, errors.Annotatef(err, "field %s", varName)
}

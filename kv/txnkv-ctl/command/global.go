package command

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/talent-plan/txnkv/kv/server/api"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/txnkvpb"
	"google.golang.org/grpc"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	dialTimeout    = 3 * time.Second
	requestTimeout = 10 * time.Second
	// Region errors are retried with a fresh region listing.
	maxRouteAttempts = 3
)

// CommandFlags are the flags shared by every command.
type CommandFlags struct {
	Addr       string
	StatusAddr string
	Format     string
}

// AddFlags registers the shared flags, usually on the persistent flags of the root command.
func (f *CommandFlags) AddFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Addr, "addr", "a", "127.0.0.1:20160", "gRPC address of the store")
	flags.StringVarP(&f.StatusAddr, "status-addr", "s", "127.0.0.1:20180", "status address of the store")
	flags.StringVarP(&f.Format, "format", "f", formatJSON, "output format, json or yaml")
}

func getFlags(cmd *cobra.Command) *CommandFlags {
	f := &CommandFlags{}
	f.Addr, _ = cmd.Flags().GetString("addr")
	f.StatusAddr, _ = cmd.Flags().GetString("status-addr")
	f.Format, _ = cmd.Flags().GetString("format")
	return f
}

// client talks to one store: transactional and raw calls over gRPC, regions over the status API.
type client struct {
	conn    *grpc.ClientConn
	kv      txnkvpb.TxnKvClient
	status  string
	http    *http.Client
	regions []*api.RegionInfo
}

func newClient(cmd *cobra.Command) (*client, error) {
	f := getFlags(cmd)
	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	conn, err := grpc.DialContext(ctx, f.Addr, grpc.WithInsecure(), grpc.WithBlock())
	if err != nil {
		return nil, errors.Annotatef(err, "connect %s", f.Addr)
	}
	return &client{
		conn:   conn,
		kv:     txnkvpb.NewTxnKvClient(conn),
		status: statusURL(f.StatusAddr),
		http:   &http.Client{Timeout: requestTimeout},
	}, nil
}

// newStatusClient returns a client of the status API only.
func newStatusClient(cmd *cobra.Command) *client {
	return &client{
		status: statusURL(getFlags(cmd).StatusAddr),
		http:   &http.Client{Timeout: requestTimeout},
	}
}

func statusURL(addr string) string {
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return strings.TrimSuffix(addr, "/")
	}
	return "http://" + addr
}

func (c *client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}

func (c *client) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

// doHTTP sends body as JSON and decodes the response into out. Non 2xx responses become errors
// carrying the response body.
func (c *client) doHTTP(method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.WithStack(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.status+path, reader)
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.WithStack(err)
	}
	if resp.StatusCode/100 != 2 {
		return errors.Errorf("[%d] %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return errors.WithStack(json.Unmarshal(data, out))
}

func (c *client) loadRegions() ([]*api.RegionInfo, error) {
	var regions api.RegionsInfo
	if err := c.doHTTP(http.MethodGet, "/api/v1/regions", nil, &regions); err != nil {
		return nil, err
	}
	c.regions = regions.Regions
	return c.regions, nil
}

// region returns the region containing key, listing regions the first time.
func (c *client) region(key []byte, refresh bool) (*api.RegionInfo, error) {
	if c.regions == nil || refresh {
		if _, err := c.loadRegions(); err != nil {
			return nil, err
		}
	}
	for _, r := range c.regions {
		start, end, err := regionRange(r)
		if err != nil {
			return nil, err
		}
		if bytes.Compare(key, start) >= 0 && (len(end) == 0 || bytes.Compare(key, end) < 0) {
			return r, nil
		}
	}
	return nil, errors.Errorf("no region contains key %q", key)
}

func regionRange(r *api.RegionInfo) ([]byte, []byte, error) {
	start, err := hex.DecodeString(r.StartKey)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "region %d start key", r.ID)
	}
	end, err := hex.DecodeString(r.EndKey)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "region %d end key", r.ID)
	}
	return start, end, nil
}

func contextOf(r *api.RegionInfo) *kvrpcpb.Context {
	return &kvrpcpb.Context{RegionId: r.ID, RegionEpoch: r.Epoch, Peer: r.Leader}
}

// route calls fn with the context of the region holding key. fn returns the region error of its
// response, which makes route list the regions again and retry.
func (c *client) route(key []byte, fn func(ctx *kvrpcpb.Context, region *api.RegionInfo) (*errorpb.Error, error)) error {
	var last *errorpb.Error
	for i := 0; i < maxRouteAttempts; i++ {
		region, err := c.region(key, i > 0)
		if err != nil {
			return err
		}
		regionErr, err := fn(contextOf(region), region)
		if err != nil {
			return err
		}
		if regionErr == nil {
			return nil
		}
		last = regionErr
	}
	return errors.Errorf("region error: %s", last.String())
}

// printResult writes v to the command output in the selected format.
func printResult(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	if getFlags(cmd).Format == formatYAML {
		if data, err = yaml.JSONToYAML(data); err != nil {
			return errors.WithStack(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func checkFormat(cmd *cobra.Command, _ []string) error {
	switch f := getFlags(cmd).Format; f {
	case formatJSON, formatYAML:
		return nil
	default:
		return errors.Errorf("unknown format %q", f)
	}
}

func keyErrorString(err *kvrpcpb.KeyError) string {
	if err == nil {
		return ""
	}
	return err.String()
}

func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	return v, errors.WithStack(err)
}

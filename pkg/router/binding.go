package router

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/session"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// bind decodes path values, the query, and the form of POST requests into a
// new Request. Fields tagged with `session:"name"` are read from the session,
// and `session:"name,delete"` removes the value after reading.
func bind[Request any](ctx context.Context, req *http.Request, pathNames []string) (*Request, error) {
	request := new(Request)

	pathValues := map[string]any{}
	for _, name := range pathNames {
		pathValues[name] = req.PathValue(name)
	}

	if err := decode(pathValues, request); err != nil {
		return nil, errorx.New(errorx.NotFound, "Page not found")
	}

	values := map[string]any{}
	for k, v := range req.URL.Query() {
		if len(v) > 0 {
			values[k] = v[0]
		}
	}

	if req.Method == http.MethodPost {
		if err := parseForm(ctx, req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot parse form: %v", err)
			return nil, errorx.New(errorx.BadRequest, "Invalid form")
		}

		for k, v := range req.PostForm {
			if len(v) > 0 {
				values[k] = v[0]
			}
		}
	}

	// Path values win over the query and the form.
	for k := range pathValues {
		delete(values, k)
	}

	if err := decode(values, request); err != nil {
		xcontext.Logger(ctx).Debugf("Cannot decode request: %v", err)
		return nil, errorx.New(errorx.BadRequest, "Invalid request")
	}

	if err := bindSession(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func decode(input map[string]any, output any) error {
	if len(input) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           output,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(input)
}

func parseForm(ctx context.Context, req *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		maxSize := xcontext.Configs(ctx).File.MaxSize
		if maxSize <= 0 {
			maxSize = 32 << 20
		}

		err := req.ParseMultipartForm(maxSize)
		if err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return err
		}

		return nil
	}

	return req.ParseForm()
}

func bindSession(ctx context.Context, request any) error {
	v := reflect.ValueOf(request).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	dirty := false
	var s sessionValues

	for i := 0; i < t.NumField(); i++ {
		tag, ok := t.Field(i).Tag.Lookup("session")
		if !ok {
			continue
		}

		name, opt, _ := strings.Cut(tag, ",")
		if s == nil {
			sess, err := session.Get(ctx)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get session: %v", err)
				return nil
			}
			s = sessionValues(sess.Values)
			defer func() {
				if dirty {
					if err := session.Save(ctx, sess); err != nil {
						xcontext.Logger(ctx).Warnf("Cannot save session: %v", err)
					}
				}
			}()
		}

		value, ok := s[name]
		if !ok {
			continue
		}

		field := v.Field(i)
		rv := reflect.ValueOf(value)
		if field.CanSet() && rv.Type().AssignableTo(field.Type()) {
			field.Set(rv)
		}

		if opt == "delete" {
			delete(s, name)
			dirty = true
		}
	}

	return nil
}

type sessionValues map[any]any

// pathValueNames returns the wildcard names of a ServeMux pattern.
func pathValueNames(pattern string) []string {
	var names []string
	for {
		start := strings.Index(pattern, "{")
		if start < 0 {
			return names
		}

		end := strings.Index(pattern[start:], "}")
		if end < 0 {
			return names
		}

		name := pattern[start+1 : start+end]
		name = strings.TrimSuffix(name, "...")
		if name != "" && name != "$" {
			names = append(names, name)
		}

		pattern = pattern[start+end+1:]
	}
}

package edgeconfig

import (
	"github.com/timzifer/edgeconf/jsonval"
)

// The obsolete wire shape predates the component/factory schema: a "things"
// object keyed by arbitrary id carrying flat scalar properties, and a
// "meta" object describing each class and the natures it implements. The
// upgrade is one-directional and intentionally lossy: non-primitive legacy
// properties are dropped, and legacy classes carried no property schemas.
func decodeLegacy(obj jsonval.Object) (*EdgeConfig, error) {
	cfg := New()

	things, err := jsonval.ObjectMember(obj, "things")
	if err != nil {
		return nil, err
	}
	for _, entry := range things {
		thing, err := jsonval.AsObject(entry)
		if err != nil {
			return nil, err
		}
		id, err := jsonval.StringMember(thing, "id")
		if err != nil {
			return nil, err
		}
		class, err := jsonval.StringMember(thing, "class")
		if err != nil {
			return nil, err
		}
		properties := make(map[string]jsonval.Value)
		for key, value := range thing {
			switch key {
			case "id", "alias", "class":
				continue
			}
			if _, err := jsonval.AsPrimitive(value); err != nil {
				continue
			}
			properties[key] = value
		}
		cfg.AddComponent(id, NewComponent(class, properties))
	}

	metas, err := jsonval.ObjectMember(obj, "meta")
	if err != nil {
		return nil, err
	}
	for _, entry := range metas {
		meta, err := jsonval.AsObject(entry)
		if err != nil {
			return nil, err
		}
		class, err := jsonval.StringMember(meta, "class")
		if err != nil {
			return nil, err
		}
		implementsArr, err := jsonval.ArrayMember(meta, "implements")
		if err != nil {
			return nil, err
		}
		natureIDs, err := jsonval.StringsFromArray(implementsArr)
		if err != nil {
			return nil, err
		}
		cfg.AddFactory(class, NewFactory(class, "", nil, natureIDs))
	}

	return cfg, nil
}

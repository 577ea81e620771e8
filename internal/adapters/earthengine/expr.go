package earthengine

import (
	"encoding/json"

	"healthycity-service/internal/domain"
	"healthycity-service/internal/ports"
)

const dateLayout = "2006-01-02"

// node is one value in a serialized expression graph: either a constant or a
// function invocation whose arguments are themselves nodes. This mirrors the
// platform client library's lazy query builder, which never evaluates
// anything until the graph is posted to the compute endpoint.
type node struct {
	constant any
	isConst  bool
	invoke   *invocation
}

type invocation struct {
	name string
	args map[string]node
}

func constVal(v any) node { return node{constant: v, isConst: true} }

func call(name string, args map[string]node) node {
	return node{invoke: &invocation{name: name, args: args}}
}

func (n node) MarshalJSON() ([]byte, error) {
	if n.isConst {
		return json.Marshal(map[string]any{"constantValue": n.constant})
	}
	if n.invoke != nil {
		return json.Marshal(map[string]any{
			"functionInvocationValue": map[string]any{
				"functionName": n.invoke.name,
				"arguments":    n.invoke.args,
			},
		})
	}
	return []byte("null"), nil
}

type expression struct {
	Values map[string]node `json:"values"`
	Result string          `json:"result"`
}

// regionGeometry buffers the region's center point by its radius.
func regionGeometry(r domain.Region) node {
	point := call("GeometryConstructors.Point", map[string]node{
		"coordinates": constVal(r.Center.LonLat()),
	})

	return call("Geometry.buffer", map[string]node{
		"geometry": point,
		"distance": constVal(r.RadiusMeters),
	})
}

// filteredCollection chains the bounds, cloud-cover and date filters onto the
// loaded collection, in that order.
func filteredCollection(f ports.CollectionFilter, region node) node {
	col := call("ImageCollection.load", map[string]node{
		"id": constVal(f.Dataset),
	})

	col = call("Collection.filter", map[string]node{
		"collection": col,
		"filter": call("Filter.intersects", map[string]node{
			"leftField":  constVal(".all"),
			"rightValue": region,
		}),
	})

	col = call("Collection.filter", map[string]node{
		"collection": col,
		"filter": call("Filter.lessThan", map[string]node{
			"leftField":  constVal(f.CloudProp),
			"rightValue": constVal(f.MaxCloudPct),
		}),
	})

	col = call("Collection.filter", map[string]node{
		"collection": col,
		"filter": call("Filter.dateRangeContains", map[string]node{
			"leftValue": call("DateRange", map[string]node{
				"start": constVal(f.Start.Format(dateLayout)),
				"end":   constVal(f.End.Format(dateLayout)),
			}),
			"rightField": constVal("system:time_start"),
		}),
	})

	return col
}

// compositeImage collapses the filtered collection to a single image, either
// a per-pixel median or the single most recent acquisition.
func compositeImage(f ports.CollectionFilter, col node) node {
	if f.Composite == ports.CompositeLatest {
		limited := call("Collection.limit", map[string]node{
			"collection": col,
			"limit":      constVal(1),
			"key":        constVal("system:time_start"),
			"ascending":  constVal(false),
		})
		return call("Collection.first", map[string]node{
			"collection": limited,
		})
	}

	return call("reduce.median", map[string]node{
		"collection": col,
	})
}

// derivedBand applies the per-pixel band math and renames the output so the
// reduction result is keyed predictably.
func derivedBand(d ports.Derivation, image node) node {
	if d.Kind == ports.DeriveLinearScale {
		band := call("Image.select", map[string]node{
			"input":         image,
			"bandSelectors": constVal([]string{d.Band}),
		})
		scaled := call("Image.multiply", map[string]node{
			"image1": band,
			"image2": call("Image.constant", map[string]node{"value": constVal(d.Scale)}),
		})
		shifted := call("Image.add", map[string]node{
			"image1": scaled,
			"image2": call("Image.constant", map[string]node{"value": constVal(d.Offset)}),
		})
		return renamed(shifted, d.As)
	}

	nd := call("Image.normalizedDifference", map[string]node{
		"input":     image,
		"bandNames": constVal([]string{d.BandA, d.BandB}),
	})
	return renamed(nd, d.As)
}

func renamed(image node, name string) node {
	return call("Image.rename", map[string]node{
		"input": image,
		"names": constVal([]string{name}),
	})
}

func reduceRegionMean(image, region node, r ports.ReduceSpec) node {
	return call("Image.reduceRegion", map[string]node{
		"image":     image,
		"reducer":   call("Reducer.mean", map[string]node{}),
		"geometry":  region,
		"scale":     constVal(r.ScaleMeters),
		"maxPixels": constVal(r.MaxPixels),
	})
}

// buildReduceExpression assembles the full graph for one pipeline run:
// region -> filtered collection -> composite -> derived band -> region mean.
func buildReduceExpression(col ports.Collection, d ports.Derivation, r ports.ReduceSpec) expression {
	region := regionGeometry(col.Filter.Region)
	filtered := filteredCollection(col.Filter, region)
	image := compositeImage(col.Filter, filtered)
	derived := derivedBand(d, image)
	stats := reduceRegionMean(derived, region, r)

	return expression{
		Values: map[string]node{"0": stats},
		Result: "0",
	}
}

package validation

import (
	"encoding/json"
	"fmt"
)

// RelationPair names the two mutually exclusive spellings of one relation:
// an inline object field and the id field referencing an existing row.
type RelationPair struct {
	Object string
	ID     string
}

var calibrationPairs = []RelationPair{
	{"camera_pose", "camera_pose_id"},
	{"camera_housing_viewport", "camera_housing_viewport_id"},
	{"flatport_parameter", "flatport_parameter_id"},
	{"domeport_parameter", "domeport_parameter_id"},
	{"photometric_calibration", "photometric_calibration_id"},
	{"camera_calibration_model", "camera_calibration_model_id"},
}

// ImageSetPairs covers every relation an image set payload may carry.
var ImageSetPairs = append(append([]RelationPair{
	{"context", "context_id"},
	{"project", "project_id"},
	{"event", "event_id"},
	{"platform", "platform_id"},
	{"sensor", "sensor_id"},
	{"pi", "pi_id"},
	{"license", "license_id"},
}, calibrationPairs...),
	RelationPair{"creators", "creators_ids"},
	RelationPair{"related_materials", "related_materials_ids"},
)

// ImagePairs is ImageSetPairs without related materials.
var ImagePairs = append(append([]RelationPair{
	{"context", "context_id"},
	{"project", "project_id"},
	{"event", "event_id"},
	{"platform", "platform_id"},
	{"sensor", "sensor_id"},
	{"pi", "pi_id"},
	{"license", "license_id"},
}, calibrationPairs...),
	RelationPair{"creators", "creators_ids"},
)

var AnnotationSetPairs = []RelationPair{
	{"context", "context_id"},
	{"project", "project_id"},
	{"pi", "pi_id"},
	{"license", "license_id"},
	{"creators", "creators_ids"},
}

var AnnotationLabelPairs = []RelationPair{
	{"annotator", "annotator_id"},
}

// ImageSetComputedFields and ImageComputedFields are derived server-side
// and rejected when present in a payload.
var (
	ImageSetComputedFields = []string{"geom", "limits"}
	ImageComputedFields    = []string{"geom"}
)

// CheckRelationPairs rejects payloads that spell the same relation both as
// an inline object and as an id.
func CheckRelationPairs(raw map[string]json.RawMessage, pairs []RelationPair, errs Errors) {
	for _, p := range pairs {
		if _, hasObj := raw[p.Object]; !hasObj {
			continue
		}
		if _, hasID := raw[p.ID]; hasID {
			errs.Add(p.Object, fmt.Sprintf("Use either '%s' (object) OR '%s' (id), not both.", p.Object, p.ID))
		}
	}
}

// CheckComputedFields rejects client-supplied values for derived columns.
func CheckComputedFields(raw map[string]json.RawMessage, fields []string, errs Errors) {
	for _, f := range fields {
		if _, ok := raw[f]; ok {
			errs.Add(f, "This field is computed server-side and must not be provided.")
		}
	}
}

// CheckNestedIDs rejects inline relation objects that smuggle an 'id' in,
// and id fields spelled as objects. Inline creation must go through the
// object field; references to existing rows go through the id field.
func CheckNestedIDs(raw map[string]json.RawMessage, pairs []RelationPair, errs Errors) {
	for _, p := range pairs {
		if body, ok := raw[p.Object]; ok {
			checkInlineObject(p.Object, body, errs)
		}
		if body, ok := raw[p.ID]; ok && isJSONObject(body) {
			errs.Add(p.ID, "Expected an id.")
		}
	}
}

func checkInlineObject(field string, body json.RawMessage, errs Errors) {
	if isJSONNull(body) {
		return
	}
	var list []json.RawMessage
	if err := json.Unmarshal(body, &list); err == nil && len(body) > 0 && body[0] == '[' {
		for _, item := range list {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(item, &obj); err != nil {
				errs.Add(field, "Each item must be an object.")
				return
			}
			if _, ok := obj["id"]; ok {
				errs.Add(field, "Do not include 'id' inside items. Use the *_ids field to reference existing objects.")
				return
			}
		}
		return
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		errs.Add(field, "Expected an object.")
		return
	}
	if _, ok := obj["id"]; ok {
		errs.Add(field, "Do not include 'id' here. Use the *_id field to reference an existing object.")
	}
}

func isJSONObject(body json.RawMessage) bool {
	for _, b := range body {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == '{'
		}
	}
	return false
}

func isJSONNull(body json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return false
	}
	return v == nil
}

package validate

// JSON Schema documents for the recruiting API payloads. Strict on shape,
// lenient on nullability: declared fields must be present with the right
// type, but string/object fields may also be explicitly null. Unknown
// extra fields pass through for forward compatibility.

const searchEnvelopeSchema = `{
  "type": "object",
  "required": ["page_num", "num_pages", "num_items", "num_items_on_page", "results"],
  "properties": {
    "page_num": {"type": "integer"},
    "num_pages": {"type": "integer"},
    "num_items": {"type": "integer"},
    "num_items_on_page": {"type": "integer"},
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "document"],
        "properties": {
          "id": {"type": "string"},
          "document": {"$ref": "#/definitions/document"}
        }
      }
    }
  },
  "definitions": {
    "date": {
      "type": "object",
      "required": ["year", "month", "day"],
      "properties": {
        "year": {"type": "integer"},
        "month": {"type": "integer"},
        "day": {"type": "integer"}
      }
    },
    "nullable_date": {
      "anyOf": [{"$ref": "#/definitions/date"}, {"type": "null"}]
    },
    "current_company": {
      "type": "object",
      "required": ["company", "title", "logo_url"],
      "properties": {
        "company": {"type": ["string", "null"]},
        "title": {"type": ["string", "null"]},
        "location": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "logo_url": {"type": ["string", "null"]},
        "company_linkedin_profile_url": {"type": ["string", "null"]},
        "starts_at": {"$ref": "#/definitions/nullable_date"},
        "ends_at": {"$ref": "#/definitions/nullable_date"}
      }
    },
    "undergrad": {
      "type": "object",
      "required": ["school", "logo_url"],
      "properties": {
        "school": {"type": ["string", "null"]},
        "degree_name": {"type": ["string", "null"]},
        "field_of_study": {"type": ["string", "null"]},
        "logo_url": {"type": ["string", "null"]},
        "school_linkedin_profile_url": {"type": ["string", "null"]},
        "starts_at": {"$ref": "#/definitions/nullable_date"},
        "ends_at": {"$ref": "#/definitions/nullable_date"}
      }
    },
    "document": {
      "type": "object",
      "required": [
        "id", "first_name", "last_name", "full_name", "email", "phone",
        "linkedin", "title", "company_name", "school", "grade", "club_id",
        "source", "created_at", "alumni", "country", "city",
        "previous_companies", "previous_titles", "profile_pic_url",
        "current_company"
      ],
      "properties": {
        "id": {"type": "string"},
        "first_name": {"type": ["string", "null"]},
        "last_name": {"type": ["string", "null"]},
        "full_name": {"type": ["string", "null"]},
        "email": {"type": ["string", "null"]},
        "phone": {"type": ["string", "null"]},
        "linkedin": {"type": ["string", "null"]},
        "title": {"type": ["string", "null"]},
        "company_name": {"type": ["string", "null"]},
        "school": {"type": ["string", "null"]},
        "grade": {"type": ["string", "null"]},
        "club_id": {"type": ["string", "null"]},
        "source": {"type": ["string", "null"]},
        "created_at": {"type": ["string", "null"]},
        "alumni": {"type": "boolean"},
        "country": {"type": ["string", "null"]},
        "city": {"type": ["string", "null"]},
        "previous_companies": {"type": ["string", "null"]},
        "previous_titles": {"type": ["string", "null"]},
        "profile_pic_url": {"type": ["string", "null"]},
        "undergrad": {
          "anyOf": [{"$ref": "#/definitions/undergrad"}, {"type": "null"}]
        },
        "current_company": {
          "anyOf": [{"$ref": "#/definitions/current_company"}, {"type": "null"}]
        }
      }
    }
  }
}`

const profileEnvelopeSchema = `{
  "type": "object",
  "required": ["num_items", "results"],
  "properties": {
    "num_items": {"type": "integer"},
    "results": {
      "type": "array",
      "items": {
        "type": "object",
        "additionalProperties": {"$ref": "#/definitions/profile"}
      }
    }
  },
  "definitions": {
    "date": {
      "type": "object",
      "required": ["year", "month", "day"],
      "properties": {
        "year": {"type": "integer"},
        "month": {"type": "integer"},
        "day": {"type": "integer"}
      }
    },
    "nullable_date": {
      "anyOf": [{"$ref": "#/definitions/date"}, {"type": "null"}]
    },
    "education": {
      "type": "object",
      "required": ["school", "degree_name", "logo_url", "starts_at"],
      "properties": {
        "school": {"type": ["string", "null"]},
        "degree_name": {"type": ["string", "null"]},
        "field_of_study": {"type": ["string", "null"]},
        "activities_and_societies": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "logo_url": {"type": ["string", "null"]},
        "school_linkedin_profile_url": {"type": ["string", "null"]},
        "starts_at": {"$ref": "#/definitions/date"},
        "ends_at": {"$ref": "#/definitions/nullable_date"}
      }
    },
    "experience": {
      "type": "object",
      "required": ["company", "title", "location", "logo_url", "starts_at"],
      "properties": {
        "company": {"type": ["string", "null"]},
        "title": {"type": ["string", "null"]},
        "location": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "logo_url": {"type": ["string", "null"]},
        "company_linkedin_profile_url": {"type": ["string", "null"]},
        "starts_at": {"$ref": "#/definitions/date"},
        "ends_at": {"$ref": "#/definitions/nullable_date"}
      }
    },
    "volunteer_work": {
      "type": "object",
      "required": ["company", "title", "cause", "starts_at", "ends_at"],
      "properties": {
        "company": {"type": ["string", "null"]},
        "title": {"type": ["string", "null"]},
        "cause": {"type": ["string", "null"]},
        "description": {"type": ["string", "null"]},
        "logo_url": {"type": ["string", "null"]},
        "company_linkedin_profile_url": {"type": ["string", "null"]},
        "starts_at": {"$ref": "#/definitions/date"},
        "ends_at": {"$ref": "#/definitions/date"}
      }
    },
    "group": {
      "type": "object",
      "required": ["name", "url"],
      "properties": {
        "name": {"type": ["string", "null"]},
        "profile_pic_url": {"type": ["string", "null"]},
        "url": {"type": ["string", "null"]}
      }
    },
    "also_viewed": {
      "type": "object",
      "required": ["name", "summary", "link"],
      "properties": {
        "name": {"type": ["string", "null"]},
        "summary": {"type": ["string", "null"]},
        "link": {"type": ["string", "null"]}
      }
    },
    "profile": {
      "type": "object",
      "required": [
        "first_name", "last_name", "full_name", "occupation", "headline",
        "summary", "city", "state", "country", "country_full_name",
        "linkedin", "public_identifier", "profile_pic_url",
        "follower_count", "connections", "education", "experiences",
        "volunteer_work", "groups", "people_also_viewed"
      ],
      "properties": {
        "first_name": {"type": ["string", "null"]},
        "last_name": {"type": ["string", "null"]},
        "full_name": {"type": ["string", "null"]},
        "occupation": {"type": ["string", "null"]},
        "headline": {"type": ["string", "null"]},
        "summary": {"type": ["string", "null"]},
        "city": {"type": ["string", "null"]},
        "state": {"type": ["string", "null"]},
        "country": {"type": ["string", "null"]},
        "country_full_name": {"type": ["string", "null"]},
        "linkedin": {"type": ["string", "null"]},
        "public_identifier": {"type": ["string", "null"]},
        "profile_pic_url": {"type": ["string", "null"]},
        "follower_count": {"type": "integer"},
        "connections": {"type": "integer"},
        "education": {"type": "array", "items": {"$ref": "#/definitions/education"}},
        "experiences": {"type": "array", "items": {"$ref": "#/definitions/experience"}},
        "volunteer_work": {"type": "array", "items": {"$ref": "#/definitions/volunteer_work"}},
        "groups": {"type": "array", "items": {"$ref": "#/definitions/group"}},
        "people_also_viewed": {"type": "array", "items": {"$ref": "#/definitions/also_viewed"}}
      }
    }
  }
}`

package repository

import (
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// BuildLeavePipeline joins leave requests with their requester and, optionally, with the
// approving/rejecting users. Filters on the leave document run before the join; the
// supervisor filter needs the joined user and runs after it.
func BuildLeavePipeline(f LeaveFilter) mongo.Pipeline {
	match := bson.D{{Key: "user_id", Value: bson.D{
		{Key: "$exists", Value: true},
		{Key: "$ne", Value: nil},
	}}}

	switch len(f.Statuses) {
	case 0:
	case 1:
		match = append(match, bson.E{Key: "status", Value: f.Statuses[0]})
	default:
		match = append(match, bson.E{Key: "status", Value: bson.D{{Key: "$in", Value: f.Statuses}}})
	}

	if f.Overlapping != nil {
		match = append(match,
			bson.E{Key: "start_date", Value: bson.D{{Key: "$lte", Value: f.Overlapping.End}}},
			bson.E{Key: "end_date", Value: bson.D{{Key: "$gte", Value: f.Overlapping.Start}}},
		)
	}

	pipe := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		lookupUser("user_id", "user"),
		bson.D{{Key: "$unwind", Value: "$user"}},
	}

	if f.SupervisorID != nil {
		pipe = append(pipe, bson.D{{Key: "$match", Value: bson.D{
			{Key: "user.supervisor", Value: *f.SupervisorID},
		}}})
	}

	hidden := bson.D{{Key: "user.password", Value: 0}}
	if f.WithDeciders {
		pipe = append(pipe,
			lookupUser("approved_by", "approved_supervisor"),
			lookupUser("rejected_by", "rejected_supervisor"),
			unwindOptional("$approved_supervisor"),
			unwindOptional("$rejected_supervisor"),
		)
		hidden = append(hidden,
			bson.E{Key: "approved_supervisor.password", Value: 0},
			bson.E{Key: "rejected_supervisor.password", Value: 0},
		)
	}

	return append(pipe,
		bson.D{{Key: "$project", Value: hidden}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	)
}

func lookupUser(localField, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: UsersCollection},
		{Key: "localField", Value: localField},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: as},
	}}}
}

func unwindOptional(path string) bson.D {
	return bson.D{{Key: "$unwind", Value: bson.D{
		{Key: "path", Value: path},
		{Key: "preserveNullAndEmptyArrays", Value: true},
	}}}
}
